package models

import "time"

// GameRecord is the archived result of a finished game.
type GameRecord struct {
	tableName struct{} `pg:"game_records"`

	Id         string    `pg:",pk" json:"id"`
	RoomCode   string    `json:"roomCode"`
	Winner     string    `json:"winner"`
	Players    []string  `pg:",array" json:"players"`
	Version    uint64    `pg:",use_zero" json:"version"`
	FinishedAt time.Time `json:"finishedAt"`
}

// SnapshotHeader is the part of a snapshot the relay reads.
type SnapshotHeader struct {
	Version uint64 `json:"version"`
	Over    bool   `json:"over"`
	Winner  int    `json:"winner"`
	Players []struct {
		Name string `json:"name"`
	} `json:"players"`
}
