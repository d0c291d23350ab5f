package participant

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/game"
	"github.com/sirupsen/logrus"
)

// ErrRoom carries a roomError message from the relay.
type ErrRoom struct {
	Message string
}

func (e *ErrRoom) Error() string {
	return e.Message
}

// Participant is one player's side of a room. It follows the host's
// snapshots until the relay names it host, then keeps its last replica as the
// authoritative state.
type Participant struct {
	mu        sync.RWMutex
	isHost    bool
	room      string
	playerID  int
	roster    []models.RosterEntry
	host      *Host
	replica   *Replica
	transport Transport
	intents   chan models.Intent
	log       *logrus.Entry
}

func NewParticipant(engine *game.Engine, transport Transport, log *logrus.Entry) *Participant {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Participant{
		host:      NewHost(engine, transport, log),
		replica:   &Replica{},
		transport: transport,
		intents:   make(chan models.Intent, 32),
		log:       log.WithField("component", "participant"),
		playerID:  -1,
	}
}

func (p *Participant) IsHost() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isHost
}

func (p *Participant) PlayerID() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.playerID
}

func (p *Participant) RoomCode() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.room
}

func (p *Participant) Roster() []models.RosterEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.RosterEntry(nil), p.roster...)
}

// Promote hands authority to this participant.
func (p *Participant) Promote() {
	p.mu.Lock()
	if p.isHost {
		p.mu.Unlock()
		return
	}
	p.isHost = true
	p.mu.Unlock()
	p.host.Adopt(p.replica.State())
	p.log.WithField("version", p.replica.Version()).Info("promoted to host")
}

// Start deals a new game for the current roster.
func (p *Participant) Start() error {
	if !p.IsHost() {
		return ErrNotHost
	}
	roster := p.Roster()
	seats := make([]models.Seat, len(roster))
	for i, r := range roster {
		seats[i] = models.Seat{Name: r.Name, Color: r.Color}
	}
	return p.host.Start(seats)
}

// Submit sends one of this player's intents to whoever is host.
func (p *Participant) Submit(intent models.Intent) error {
	intent.PlayerId = p.PlayerID()
	if p.IsHost() {
		p.intents <- intent
		return nil
	}
	return p.transport.SendAction(p.RoomCode(), intent)
}

// State is the local view: authoritative on the host, a replica elsewhere.
func (p *Participant) State() *models.GameState {
	if p.IsHost() {
		return p.host.State()
	}
	return p.replica.State()
}

// Run applies queued intents while this participant is host.
func (p *Participant) Run(ctx context.Context) error {
	return p.host.Run(ctx, p.intents)
}

func (p *Participant) joined(dto models.RoomJoinedDto) {
	p.mu.Lock()
	p.room = dto.RoomCode
	p.playerID = dto.PlayerId
	p.roster = dto.Players
	p.mu.Unlock()
	p.host.SetRoom(dto.RoomCode)
	if dto.IsHost {
		p.Promote()
	}
}

// Receive applies one relay message. It reports whether the local state changed.
func (p *Participant) Receive(env models.Envelope) (bool, error) {
	switch env.Event {
	case "roomCreated", "roomJoined":
		var dto models.RoomJoinedDto
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return false, err
		}
		p.joined(dto)
		return false, nil
	case "roomUpdate":
		var dto models.RoomUpdateDto
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return false, err
		}
		p.joined(models.RoomJoinedDto{RoomCode: dto.RoomCode, Players: dto.Players, PlayerId: dto.PlayerId, IsHost: dto.IsHost})
		return false, nil
	case "roomError":
		var dto models.RoomErrorDto
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return false, err
		}
		return false, &ErrRoom{Message: dto.Message}
	case "stateUpdate":
		if p.IsHost() {
			// our own broadcast coming back
			return true, nil
		}
		var dto models.StateUpdateDto
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return false, err
		}
		var st models.GameState
		if err := json.Unmarshal(dto.State, &st); err != nil {
			return false, err
		}
		if !p.replica.Apply(&st) {
			p.log.WithField("version", st.Version).Debug("stale snapshot dropped")
			return false, nil
		}
		return true, nil
	case "actionRequest":
		var dto models.ActionRequestDto
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return false, err
		}
		if !p.IsHost() {
			p.log.WithField("action", dto.Action).Debug("action for a follower dropped")
			return false, nil
		}
		p.intents <- dto.Intent
		return false, nil
	}
	return false, errors.New("unknown event " + env.Event)
}
