package models

import "encoding/json"

type ActionType string

const (
	ActionRoll         ActionType = "roll"
	ActionBuild        ActionType = "build"
	ActionTrade        ActionType = "trade"
	ActionRespondTrade ActionType = "respondTrade"
	ActionCancelTrade  ActionType = "cancelTrade"
	ActionDecide       ActionType = "decide"
	ActionEndTurn      ActionType = "endTurn"
)

type JailOption string

const (
	JailRoll JailOption = "roll"
	JailPay  JailOption = "pay"
	JailCard JailOption = "card"
)

// Intent is a participant's requested action, applied only by the host.
type Intent struct {
	Action   ActionType  `json:"action"`
	PlayerId int         `json:"playerId"`
	TileId   int         `json:"tileId,omitempty"`
	Jail     JailOption  `json:"jail,omitempty"`
	Accept   bool        `json:"accept,omitempty"`
	Trade    *TradeOffer `json:"trade,omitempty"`
}

type RosterEntry struct {
	Id     int    `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	IsHost bool   `json:"isHost"`
}

type CreateRoomDto struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type JoinRoomDto struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
	Color    string `json:"color"`
}

// RoomJoinedDto is sent as roomCreated or roomJoined.
type RoomJoinedDto struct {
	RoomCode   string        `json:"roomCode"`
	Players    []RosterEntry `json:"players"`
	PlayerId   int           `json:"playerId"`
	IsHost     bool          `json:"isHost"`
	PlayerName string        `json:"playerName,omitempty"`
	Token      string        `json:"token,omitempty"`
}

type RoomUpdateDto struct {
	RoomCode string        `json:"roomCode"`
	Players  []RosterEntry `json:"players"`
	PlayerId int           `json:"playerId"`
	IsHost   bool          `json:"isHost"`
}

type RoomErrorDto struct {
	Message string `json:"message"`
}

// StateUpdateDto carries a snapshot verbatim; the relay never decodes the whole state.
type StateUpdateDto struct {
	RoomCode string          `json:"roomCode,omitempty"`
	State    json.RawMessage `json:"state"`
}

type ActionDto struct {
	RoomCode string `json:"roomCode"`
	Intent
}

// Envelope frames every message on the native websocket transport.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type RoomInfoDto struct {
	RoomCode string        `json:"roomCode"`
	Players  []RosterEntry `json:"players"`
	Started  bool          `json:"started"`
}

// ActionRequestDto is what the host receives for a forwarded intent.
type ActionRequestDto struct {
	RoomCode string `json:"roomCode"`
	Intent
}

type VerifyRoomDto struct {
	Code string `query:"code"`
}
