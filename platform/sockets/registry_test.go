package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/cache"
	"github.com/Vishkec/monopoly/platform/database"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/sirupsen/logrus"
)

type sent struct {
	event   string
	payload interface{}
}

type fakeMember struct {
	id  string
	mu  sync.Mutex
	out []sent
}

func (f *fakeMember) ID() string { return f.id }

func (f *fakeMember) Send(event string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, sent{event, payload})
	return nil
}

func (f *fakeMember) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, s := range f.out {
		names = append(names, s.event)
	}
	return names
}

func (f *fakeMember) last(event string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.out) - 1; i >= 0; i-- {
		if f.out[i].event == event {
			return f.out[i].payload, true
		}
	}
	return nil, false
}

func (f *fakeMember) reset() {
	f.mu.Lock()
	f.out = nil
	f.mu.Unlock()
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestRegistry(t *testing.T) (*Registry, *cache.MemoryStore, *database.MemoryArchive) {
	t.Helper()
	store := cache.NewMemoryStore()
	archive := database.NewMemoryArchive()
	reg := NewRegistry(store, archive, SeatTokens("secret", time.Hour), quietLog())
	n := 0
	reg.newCode = func() string {
		n++
		return fmt.Sprintf("ROOM%02d", n)
	}
	return reg, store, archive
}

func members(n int) []*fakeMember {
	out := make([]*fakeMember, n)
	for i := range out {
		out[i] = &fakeMember{id: fmt.Sprintf("m%d", i)}
	}
	return out
}

// seatAll creates a room with ms[0] as host and joins the rest.
func seatAll(t *testing.T, reg *Registry, ms []*fakeMember) string {
	t.Helper()
	created, err := reg.Create(ms[0], models.CreateRoomDto{Name: "P0"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i, m := range ms[1:] {
		if _, err := reg.Join(m, models.JoinRoomDto{RoomCode: created.RoomCode, Name: fmt.Sprintf("P%d", i+1)}); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	return created.RoomCode
}

func snapshot(version uint64, over bool, winner int) json.RawMessage {
	b, _ := json.Marshal(map[string]interface{}{
		"version": version,
		"over":    over,
		"winner":  winner,
		"players": []map[string]string{{"name": "P0"}, {"name": "P1"}},
	})
	return b
}

func TestCreateRoom(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	host := &fakeMember{id: "host"}
	out, err := reg.Create(host, models.CreateRoomDto{Name: "Ann", Color: "#fff"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.RoomCode != "ROOM01" || out.PlayerId != 0 || !out.IsHost || out.PlayerName != "Ann" {
		t.Fatalf("unexpected reply %+v", out)
	}
	if _, ok := host.last("roomCreated"); !ok {
		t.Fatalf("host was not told about the room: %v", host.events())
	}

	token, err := jwt.Parse(out.Token, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	if err != nil {
		t.Fatalf("seat token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["room"] != "ROOM01" || claims["member"] != "host" {
		t.Fatalf("unexpected claims %v", claims)
	}
}

func TestCreateSkipsReservedCodes(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	store.Reserve("ROOM01")
	out, err := reg.Create(&fakeMember{id: "a"}, models.CreateRoomDto{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.RoomCode != "ROOM02" {
		t.Fatalf("expected the next free code, got %s", out.RoomCode)
	}
	if out.PlayerName != "Player 1" {
		t.Fatalf("expected default name, got %q", out.PlayerName)
	}
}

func TestJoinAssignsSequentialIds(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ms := members(3)
	code := seatAll(t, reg, ms)

	info, err := reg.Get(code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for i, p := range info.Players {
		if p.Id != i || p.IsHost != (i == 0) {
			t.Fatalf("unexpected roster %+v", info.Players)
		}
	}
	if info.Players[2].Color == "" {
		t.Fatalf("expected a default color")
	}

	payload, ok := ms[1].last("roomUpdate")
	if !ok {
		t.Fatalf("existing member should see the roster change")
	}
	update := payload.(models.RoomUpdateDto)
	if update.PlayerId != 1 || update.IsHost || len(update.Players) != 3 {
		t.Fatalf("unexpected update %+v", update)
	}
	for _, e := range ms[2].events() {
		if e == "roomUpdate" {
			t.Fatalf("the joiner gets roomJoined, not roomUpdate")
		}
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	m := &fakeMember{id: "x"}
	if _, err := reg.Join(m, models.JoinRoomDto{RoomCode: "NOPE00"}); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	reg.Dispatch(m, "joinRoom", []byte(`{"roomCode":"NOPE00","name":"x"}`))
	payload, ok := m.last("roomError")
	if !ok || payload.(models.RoomErrorDto).Message != "Room not found." {
		t.Fatalf("expected roomError, got %v", m.events())
	}
	if len(reg.List()) != 0 {
		t.Fatalf("failed join must not create rooms")
	}
}

func TestJoinIsCaseInsensitive(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	seatAll(t, reg, members(1))
	if _, err := reg.Join(&fakeMember{id: "late"}, models.JoinRoomDto{RoomCode: " room01 "}); err != nil {
		t.Fatalf("join: %v", err)
	}
}

func TestRoomFull(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	code := seatAll(t, reg, members(4))
	if _, err := reg.Join(&fakeMember{id: "fifth"}, models.JoinRoomDto{RoomCode: code}); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestHostLeavesBeforeStart(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ms := members(3)
	code := seatAll(t, reg, ms)

	reg.Leave(ms[0])
	info, _ := reg.Get(code)
	if len(info.Players) != 2 || info.Players[0].Name != "P1" || !info.Players[0].IsHost {
		t.Fatalf("expected P1 promoted, got %+v", info.Players)
	}
	if info.Players[0].Id != 0 || info.Players[1].Id != 1 {
		t.Fatalf("ids should be renumbered before the game starts: %+v", info.Players)
	}
	payload, _ := ms[1].last("roomUpdate")
	if u := payload.(models.RoomUpdateDto); !u.IsHost || u.PlayerId != 0 {
		t.Fatalf("promoted member should learn it is host: %+v", u)
	}
}

func TestIdsStableAfterStart(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ms := members(3)
	code := seatAll(t, reg, ms)
	if err := reg.SetState(ms[0], snapshot(1, false, -1)); err != nil {
		t.Fatalf("set state: %v", err)
	}

	reg.Leave(ms[0])
	info, _ := reg.Get(code)
	if info.Players[0].Id != 1 || info.Players[1].Id != 2 || !info.Players[0].IsHost {
		t.Fatalf("ids must not change once started: %+v", info.Players)
	}
	late := &fakeMember{id: "late"}
	joined, err := reg.Join(late, models.JoinRoomDto{RoomCode: code})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.PlayerId != 3 {
		t.Fatalf("late joiner must get a fresh id, got %d", joined.PlayerId)
	}
}

func TestStateOnlyFromHost(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ms := members(2)
	code := seatAll(t, reg, ms)
	ms[0].reset()
	ms[1].reset()

	if err := reg.SetState(ms[1], snapshot(1, false, -1)); !errors.Is(err, ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if len(ms[0].events()) != 0 || len(ms[1].events()) != 0 {
		t.Fatalf("follower state must not be relayed")
	}
	if _, err := store.Load(code); err != cache.ErrMiss {
		t.Fatalf("follower state must not be cached")
	}

	if err := reg.SetState(ms[0], snapshot(1, false, -1)); err != nil {
		t.Fatalf("set state: %v", err)
	}
	for _, m := range ms {
		if _, ok := m.last("stateUpdate"); !ok {
			t.Fatalf("%s did not receive the snapshot", m.id)
		}
	}
	if err := reg.SetState(ms[0], json.RawMessage(`not json`)); err == nil {
		t.Fatalf("malformed snapshot should be rejected")
	}
}

func TestLateJoinerReceivesLastState(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ms := members(2)
	code := seatAll(t, reg, ms)
	reg.SetState(ms[0], snapshot(1, false, -1))
	reg.SetState(ms[0], snapshot(2, false, -1))

	late := &fakeMember{id: "late"}
	if _, err := reg.Join(late, models.JoinRoomDto{RoomCode: code}); err != nil {
		t.Fatalf("join: %v", err)
	}
	events := late.events()
	if len(events) != 2 || events[0] != "roomJoined" || events[1] != "stateUpdate" {
		t.Fatalf("expected roomJoined then stateUpdate, got %v", events)
	}
	payload, _ := late.last("stateUpdate")
	var header models.SnapshotHeader
	json.Unmarshal(payload.(models.StateUpdateDto).State, &header)
	if header.Version != 2 {
		t.Fatalf("expected the newest snapshot, got version %d", header.Version)
	}
}

func TestForwardOnlyToHost(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ms := members(3)
	seatAll(t, reg, ms)
	for _, m := range ms {
		m.reset()
	}

	reg.Dispatch(ms[2], "action", []byte(`{"roomCode":"ROOM01","action":"roll","playerId":0}`))
	payload, ok := ms[0].last("actionRequest")
	if !ok {
		t.Fatalf("host did not receive the action")
	}
	req := payload.(models.ActionRequestDto)
	if req.Action != models.ActionRoll || req.PlayerId != 2 {
		t.Fatalf("action should carry the sender's id, got %+v", req)
	}
	if len(ms[1].events()) != 0 || len(ms[2].events()) != 0 {
		t.Fatalf("followers must not see actions")
	}
	if err := reg.Forward(&fakeMember{id: "stranger"}, models.Intent{Action: models.ActionRoll}); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestFinishedGameArchivedOnce(t *testing.T) {
	reg, _, archive := newTestRegistry(t)
	ms := members(2)
	seatAll(t, reg, ms)
	reg.SetState(ms[0], snapshot(7, true, 1))
	reg.SetState(ms[0], snapshot(8, true, 1))

	records, _ := archive.Recent(0)
	if len(records) != 1 {
		t.Fatalf("expected one archived game, got %d", len(records))
	}
	if records[0].Winner != "P1" || records[0].RoomCode != "ROOM01" {
		t.Fatalf("unexpected record %+v", records[0])
	}
}

func TestRestartRenumbersSeats(t *testing.T) {
	reg, _, archive := newTestRegistry(t)
	ms := members(3)
	code := seatAll(t, reg, ms)
	reg.SetState(ms[0], snapshot(1, false, -1))
	reg.Leave(ms[1])
	reg.SetState(ms[0], snapshot(2, true, 0))
	info, _ := reg.Get(code)
	if info.Players[1].Id != 2 {
		t.Fatalf("ids must not change while the game runs: %+v", info.Players)
	}
	ms[2].reset()

	if err := reg.SetState(ms[0], snapshot(3, false, -1)); err != nil {
		t.Fatalf("set state: %v", err)
	}
	events := ms[2].events()
	if len(events) != 2 || events[0] != "roomUpdate" || events[1] != "stateUpdate" {
		t.Fatalf("expected roomUpdate before the new game's snapshot, got %v", events)
	}
	payload, _ := ms[2].last("roomUpdate")
	if update := payload.(models.RoomUpdateDto); update.PlayerId != 1 || update.IsHost {
		t.Fatalf("expected seat 1 in the new game, got %+v", update)
	}
	info, _ = reg.Get(code)
	if info.Players[0].Id != 0 || info.Players[1].Id != 1 {
		t.Fatalf("expected roster order ids, got %+v", info.Players)
	}

	ms[0].reset()
	if err := reg.Forward(ms[2], models.Intent{Action: models.ActionRoll}); err != nil {
		t.Fatalf("forward: %v", err)
	}
	req, _ := ms[0].last("actionRequest")
	if req.(models.ActionRequestDto).PlayerId != 1 {
		t.Fatalf("action should carry the new id, got %+v", req)
	}

	late := &fakeMember{id: "late"}
	joined, err := reg.Join(late, models.JoinRoomDto{RoomCode: code})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.PlayerId != 2 {
		t.Fatalf("late joiner should follow the renumbered seats, got %d", joined.PlayerId)
	}

	ms[2].reset()
	reg.SetState(ms[0], snapshot(4, false, -1))
	if events := ms[2].events(); len(events) != 1 || events[0] != "stateUpdate" {
		t.Fatalf("ids should only be renumbered once per game, got %v", events)
	}
	reg.SetState(ms[0], snapshot(5, true, 1))
	records, _ := archive.Recent(0)
	if len(records) != 2 {
		t.Fatalf("expected both finished games archived, got %d", len(records))
	}
}

func TestEmptyRoomIsDeleted(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ms := members(2)
	code := seatAll(t, reg, ms)
	reg.SetState(ms[0], snapshot(1, false, -1))

	reg.Leave(ms[0])
	reg.Leave(ms[1])
	if _, err := reg.Get(code); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("room should be gone, got %v", err)
	}
	if _, err := store.Load(code); err != cache.ErrMiss {
		t.Fatalf("cached state should be dropped")
	}
	if ok, _ := store.Reserve(code); !ok {
		t.Fatalf("code should be released")
	}
}

func TestSeatLookup(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ms := members(2)
	code := seatAll(t, reg, ms)
	entry, err := reg.Seat(code, "m1")
	if err != nil || entry.Id != 1 || entry.Name != "P1" || entry.IsHost {
		t.Fatalf("unexpected seat %+v (%v)", entry, err)
	}
	if _, err := reg.Seat(code, "nobody"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestDispatchMalformed(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	m := &fakeMember{id: "x"}
	reg.Dispatch(m, "createRoom", []byte(`{`))
	if _, ok := m.last("roomError"); !ok {
		t.Fatalf("expected roomError for malformed create")
	}
	reg.Dispatch(m, "stateUpdate", []byte(`{`))
	reg.Dispatch(m, "bogus", nil)
	if len(reg.List()) != 0 {
		t.Fatalf("no room should exist")
	}
}
