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

var (
	ErrNotStarted = errors.New("game has not started")
	ErrStarted    = errors.New("game already started")
	ErrNotHost    = errors.New("only the host can do that")
)

// Transport carries a participant's traffic to the relay.
type Transport interface {
	Broadcast(roomCode string, state []byte) error
	SendAction(roomCode string, intent models.Intent) error
}

// Host owns the authoritative game state. Every mutation happens under its
// lock, one intent at a time, and is followed by a full snapshot broadcast.
type Host struct {
	mu        sync.Mutex
	engine    *game.Engine
	transport Transport
	log       *logrus.Entry
	room      string
	state     *models.GameState
	// rolled is set once the in-progress snapshot of a roll went out
	rolled bool
}

func NewHost(engine *game.Engine, transport Transport, log *logrus.Entry) *Host {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	h := &Host{engine: engine, transport: transport, log: log.WithField("component", "host")}
	// runs inside Handle, so the lock is already held
	engine.OnRollStart(func(*models.GameState) {
		h.rolled = true
		h.publish()
	})
	return h
}

func (h *Host) SetRoom(code string) {
	h.mu.Lock()
	h.room = code
	h.mu.Unlock()
}

func (h *Host) Start(seats []models.Seat) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != nil && !h.state.Over {
		return ErrStarted
	}
	var version uint64
	if h.state != nil {
		version = h.state.Version
	}
	st, err := h.engine.NewGame(seats)
	if err != nil {
		return err
	}
	st.Version = version
	h.state = st
	h.publish()
	h.log.WithField("players", len(seats)).Info("game started")
	return nil
}

// Adopt makes st the authoritative state, as when a follower is promoted.
func (h *Host) Adopt(st *models.GameState) {
	h.mu.Lock()
	h.state = st
	h.mu.Unlock()
}

func (h *Host) publish() {
	h.state.Version++
	b, err := json.Marshal(h.state)
	if err != nil {
		h.log.WithError(err).Error("snapshot encoding failed")
		return
	}
	if err := h.transport.Broadcast(h.room, b); err != nil {
		h.log.WithError(err).Warn("broadcast failed")
	}
}

// Handle validates and applies one intent. Rejected intents leave the state
// untouched and are not broadcast, except for a failed build, which still
// records a log line, and a roll that failed after followers saw it start.
func (h *Host) Handle(ctx context.Context, intent models.Intent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == nil {
		return ErrNotStarted
	}
	h.rolled = false
	err := h.apply(ctx, intent)
	if err == nil || errors.Is(err, game.ErrInsufficientFunds) || h.rolled {
		h.publish()
	}
	if err != nil {
		h.log.WithError(err).WithField("player", intent.PlayerId).WithField("action", intent.Action).Debug("intent ignored")
	}
	return err
}

func (h *Host) apply(ctx context.Context, intent models.Intent) error {
	st := h.state
	if intent.PlayerId < 0 || intent.PlayerId >= len(st.Players) {
		return game.ErrUnknownPlayer
	}
	switch intent.Action {
	case models.ActionRoll:
		return h.engine.Roll(ctx, st, intent.PlayerId, intent.Jail)
	case models.ActionBuild:
		return h.engine.Build(st, intent.PlayerId, intent.TileId)
	case models.ActionTrade:
		if intent.Trade == nil {
			return game.ErrInvalidTrade
		}
		offer := *intent.Trade
		offer.From = intent.PlayerId
		return h.engine.ProposeTrade(st, offer)
	case models.ActionRespondTrade:
		return h.engine.RespondTrade(st, intent.PlayerId, intent.Accept)
	case models.ActionCancelTrade:
		return h.engine.CancelTrade(st, intent.PlayerId)
	case models.ActionDecide:
		return h.engine.ResolveDecision(st, intent.PlayerId, intent.Accept)
	case models.ActionEndTurn:
		return h.engine.EndTurn(st, intent.PlayerId)
	}
	return errors.New("unknown action " + string(intent.Action))
}

// Run applies intents in arrival order until ctx is done or intents closes.
func (h *Host) Run(ctx context.Context, intents <-chan models.Intent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent, ok := <-intents:
			if !ok {
				return nil
			}
			h.Handle(ctx, intent)
		}
	}
}

// State returns a copy of the authoritative state, or nil before the game starts.
func (h *Host) State() *models.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.state)
}

func clone(st *models.GameState) *models.GameState {
	if st == nil {
		return nil
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil
	}
	var out models.GameState
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return &out
}
