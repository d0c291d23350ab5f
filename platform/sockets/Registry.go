package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/pkg"
	"github.com/Vishkec/monopoly/platform/board"
	"github.com/Vishkec/monopoly/platform/cache"
	"github.com/Vishkec/monopoly/platform/database"
	"github.com/Vishkec/monopoly/platform/game"
	"github.com/sirupsen/logrus"
)

const codeLength = 6

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrNotMember    = errors.New("not in a room")
	ErrNotHost      = errors.New("only the host may publish state")
	ErrNoRoomCode   = errors.New("could not allocate a room code")
)

// Member is one connection to the relay, whatever transport it arrived on.
type Member interface {
	ID() string
	Send(event string, payload interface{}) error
}

// TokenIssuer signs a seat token for a member of a room.
type TokenIssuer func(roomCode, memberID, name string) (string, error)

type seat struct {
	member   Member
	name     string
	color    string
	playerID int
}

type room struct {
	code     string
	seats    []*seat
	started  bool
	issued   int
	version  uint64
	over     bool
	archived bool
}

type delivery struct {
	to      Member
	event   string
	payload interface{}
}

// Registry tracks rooms and their members. The earliest joined member of a
// room is its host.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]*room
	members map[string]string

	store   cache.SnapshotStore
	archive database.ResultsArchive
	tokens  TokenIssuer
	newCode func() string
	log     *logrus.Entry
}

func NewRegistry(store cache.SnapshotStore, archive database.ResultsArchive, tokens TokenIssuer, log *logrus.Entry) *Registry {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Registry{
		rooms:   map[string]*room{},
		members: map[string]string{},
		store:   store,
		archive: archive,
		tokens:  tokens,
		newCode: func() string { return pkg.RandString(codeLength) },
		log:     log.WithField("component", "relay"),
	}
}

func (r *Registry) deliver(ds []delivery) {
	for _, d := range ds {
		if err := d.to.Send(d.event, d.payload); err != nil {
			r.log.WithError(err).WithField("member", d.to.ID()).WithField("event", d.event).Warn("send failed")
		}
	}
}

func (r *Registry) allocCode() (string, error) {
	for i := 0; i < 64; i++ {
		code := r.newCode()
		if _, taken := r.rooms[code]; taken {
			continue
		}
		ok, err := r.store.Reserve(code)
		if err != nil {
			r.log.WithError(err).Warn("room code reservation failed")
			return code, nil
		}
		if ok {
			return code, nil
		}
	}
	return "", ErrNoRoomCode
}

func newSeat(m Member, index int, name, color string) *seat {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Player %d", index+1)
	}
	if color == "" {
		color = board.PlayerColors[index%len(board.PlayerColors)]
	}
	return &seat{member: m, name: name, color: color, playerID: index}
}

func roster(rm *room) []models.RosterEntry {
	out := make([]models.RosterEntry, 0, len(rm.seats))
	for i, s := range rm.seats {
		out = append(out, models.RosterEntry{Id: s.playerID, Name: s.name, Color: s.color, IsHost: i == 0})
	}
	return out
}

func (r *Registry) joined(rm *room, s *seat) models.RoomJoinedDto {
	dto := models.RoomJoinedDto{
		RoomCode:   rm.code,
		Players:    roster(rm),
		PlayerId:   s.playerID,
		IsHost:     rm.seats[0] == s,
		PlayerName: s.name,
	}
	if r.tokens != nil {
		token, err := r.tokens(rm.code, s.member.ID(), s.name)
		if err != nil {
			r.log.WithError(err).Warn("seat token not issued")
		}
		dto.Token = token
	}
	return dto
}

// updates tells every member except skip about the roster, each with their own id.
func updates(rm *room, skip Member) []delivery {
	players := roster(rm)
	var ds []delivery
	for i, s := range rm.seats {
		if skip != nil && s.member.ID() == skip.ID() {
			continue
		}
		ds = append(ds, delivery{to: s.member, event: "roomUpdate", payload: models.RoomUpdateDto{
			RoomCode: rm.code,
			Players:  players,
			PlayerId: s.playerID,
			IsHost:   i == 0,
		}})
	}
	return ds
}

func (r *Registry) Create(m Member, dto models.CreateRoomDto) (models.RoomJoinedDto, error) {
	r.mu.Lock()
	ds, emptied := r.leaveLocked(m)
	code, err := r.allocCode()
	if err != nil {
		r.mu.Unlock()
		r.finishLeave(emptied)
		r.deliver(ds)
		return models.RoomJoinedDto{}, err
	}
	s := newSeat(m, 0, dto.Name, dto.Color)
	rm := &room{code: code, seats: []*seat{s}, issued: 1}
	r.rooms[code] = rm
	r.members[m.ID()] = code
	out := r.joined(rm, s)
	r.mu.Unlock()

	r.finishLeave(emptied)
	r.deliver(ds)
	r.deliver([]delivery{{to: m, event: "roomCreated", payload: out}})
	r.log.WithField("room", code).WithField("player", s.name).Info("room created")
	return out, nil
}

func (r *Registry) Join(m Member, dto models.JoinRoomDto) (models.RoomJoinedDto, error) {
	code := strings.ToUpper(strings.TrimSpace(dto.RoomCode))
	r.mu.Lock()
	rm, ok := r.rooms[code]
	if !ok {
		r.mu.Unlock()
		return models.RoomJoinedDto{}, ErrRoomNotFound
	}
	if current, in := r.members[m.ID()]; in && current == code {
		r.mu.Unlock()
		return models.RoomJoinedDto{}, fmt.Errorf("already in room %s", code)
	}
	if len(rm.seats) >= game.MaxPlayers {
		r.mu.Unlock()
		return models.RoomJoinedDto{}, ErrRoomFull
	}
	ds, emptied := r.leaveLocked(m)
	s := newSeat(m, len(rm.seats), dto.Name, dto.Color)
	if rm.started {
		s.playerID = rm.issued
	}
	rm.issued++
	rm.seats = append(rm.seats, s)
	r.members[m.ID()] = code
	out := r.joined(rm, s)
	ds = append(ds, delivery{to: m, event: "roomJoined", payload: out})
	ds = append(ds, updates(rm, m)...)
	started := rm.started
	r.mu.Unlock()

	r.finishLeave(emptied)
	r.deliver(ds)
	if started {
		if state, err := r.store.Load(code); err == nil {
			r.deliver([]delivery{{to: m, event: "stateUpdate", payload: models.StateUpdateDto{RoomCode: code, State: state}}})
		} else if err != cache.ErrMiss {
			r.log.WithError(err).WithField("room", code).Warn("last state unavailable")
		}
	}
	r.log.WithField("room", code).WithField("player", s.name).Info("player joined")
	return out, nil
}

func (r *Registry) Leave(m Member) {
	r.mu.Lock()
	ds, emptied := r.leaveLocked(m)
	r.mu.Unlock()
	r.finishLeave(emptied)
	r.deliver(ds)
}

// leaveLocked removes m from its room. Ids are renumbered only while the game
// has not started; afterwards they must keep matching the game state.
func (r *Registry) leaveLocked(m Member) ([]delivery, string) {
	code, ok := r.members[m.ID()]
	if !ok {
		return nil, ""
	}
	delete(r.members, m.ID())
	rm := r.rooms[code]
	if rm == nil {
		return nil, ""
	}
	wasHost := rm.seats[0].member.ID() == m.ID()
	for i, s := range rm.seats {
		if s.member.ID() == m.ID() {
			rm.seats = append(rm.seats[:i], rm.seats[i+1:]...)
			break
		}
	}
	log := r.log.WithField("room", code)
	if len(rm.seats) == 0 {
		delete(r.rooms, code)
		log.Info("room closed")
		return nil, code
	}
	if !rm.started {
		for i, s := range rm.seats {
			s.playerID = i
		}
		rm.issued = len(rm.seats)
	}
	if wasHost {
		log.WithField("player", rm.seats[0].name).Info("host promoted")
	}
	return updates(rm, nil), ""
}

func (r *Registry) finishLeave(emptied string) {
	if emptied == "" {
		return
	}
	if err := r.store.Delete(emptied); err != nil {
		r.log.WithError(err).WithField("room", emptied).Warn("cache cleanup failed")
	}
}

// SetState relays a snapshot from the host to every member of its room,
// including the host.
func (r *Registry) SetState(m Member, state json.RawMessage) error {
	var header models.SnapshotHeader
	if err := json.Unmarshal(state, &header); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	r.mu.Lock()
	code, ok := r.members[m.ID()]
	if !ok {
		r.mu.Unlock()
		return ErrNotMember
	}
	rm := r.rooms[code]
	if rm.seats[0].member.ID() != m.ID() {
		r.mu.Unlock()
		return ErrNotHost
	}
	rm.started = true
	var ds []delivery
	newest := header.Version >= rm.version
	if newest {
		if rm.over && !header.Over {
			// a new game is seated in roster order
			for i, s := range rm.seats {
				s.playerID = i
			}
			rm.issued = len(rm.seats)
			rm.archived = false
			ds = append(ds, updates(rm, nil)...)
			r.log.WithField("room", code).Info("new game started")
		}
		rm.version = header.Version
		rm.over = header.Over
	}
	archive := header.Over && !rm.archived
	if archive {
		rm.archived = true
	}
	payload := models.StateUpdateDto{RoomCode: code, State: state}
	for _, s := range rm.seats {
		ds = append(ds, delivery{to: s.member, event: "stateUpdate", payload: payload})
	}
	r.mu.Unlock()

	if newest {
		if err := r.store.Save(code, state); err != nil {
			r.log.WithError(err).WithField("room", code).Warn("snapshot not cached")
		}
	}
	r.deliver(ds)
	if archive && r.archive != nil {
		if err := r.archive.Record(code, header); err != nil {
			r.log.WithError(err).WithField("room", code).Error("result not archived")
		}
	}
	return nil
}

// Forward hands an intent to the host of the sender's room, stamped with the
// sender's player id.
func (r *Registry) Forward(m Member, intent models.Intent) error {
	r.mu.Lock()
	code, ok := r.members[m.ID()]
	if !ok {
		r.mu.Unlock()
		return ErrNotMember
	}
	rm := r.rooms[code]
	for _, s := range rm.seats {
		if s.member.ID() == m.ID() {
			intent.PlayerId = s.playerID
		}
	}
	host := rm.seats[0].member
	r.mu.Unlock()

	r.deliver([]delivery{{to: host, event: "actionRequest", payload: models.ActionRequestDto{RoomCode: code, Intent: intent}}})
	return nil
}

func (r *Registry) Get(code string) (models.RoomInfoDto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[strings.ToUpper(code)]
	if !ok {
		return models.RoomInfoDto{}, ErrRoomNotFound
	}
	return models.RoomInfoDto{RoomCode: rm.code, Players: roster(rm), Started: rm.started}, nil
}

func (r *Registry) List() []models.RoomInfoDto {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.RoomInfoDto, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, models.RoomInfoDto{RoomCode: rm.code, Players: roster(rm), Started: rm.started})
	}
	return out
}

// Seat reports the current roster entry of a member, as named in a seat token.
func (r *Registry) Seat(code, memberID string) (models.RosterEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[code]
	if !ok {
		return models.RosterEntry{}, ErrRoomNotFound
	}
	for i, s := range rm.seats {
		if s.member.ID() == memberID {
			return models.RosterEntry{Id: s.playerID, Name: s.name, Color: s.color, IsHost: i == 0}, nil
		}
	}
	return models.RosterEntry{}, ErrNotMember
}
