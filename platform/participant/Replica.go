package participant

import (
	"sync"

	"github.com/Vishkec/monopoly/app/models"
)

// Replica is a follower's read-only copy of the game, replaced wholesale by
// each newer snapshot.
type Replica struct {
	mu    sync.RWMutex
	state *models.GameState
}

// Apply takes st if it is newer than the current copy and reports whether it did.
func (r *Replica) Apply(st *models.GameState) bool {
	if st == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != nil && st.Version <= r.state.Version {
		return false
	}
	r.state = st
	return true
}

func (r *Replica) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return 0
	}
	return r.state.Version
}

func (r *Replica) State() *models.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.state)
}
