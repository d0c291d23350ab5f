package database

import (
	"sync"
	"time"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/go-pg/pg/v10"
	uuid "github.com/satori/go.uuid"
)

// ResultsArchive stores the outcome of finished games.
type ResultsArchive interface {
	Record(roomCode string, header models.SnapshotHeader) error
	Recent(limit int) ([]models.GameRecord, error)
}

// NewRecord builds the archive row for a finished snapshot.
func NewRecord(roomCode string, header models.SnapshotHeader, finishedAt time.Time) models.GameRecord {
	names := make([]string, 0, len(header.Players))
	for _, p := range header.Players {
		names = append(names, p.Name)
	}
	winner := ""
	if header.Winner >= 0 && header.Winner < len(names) {
		winner = names[header.Winner]
	}
	return models.GameRecord{
		Id:         uuid.NewV4().String(),
		RoomCode:   roomCode,
		Winner:     winner,
		Players:    names,
		Version:    header.Version,
		FinishedAt: finishedAt.UTC(),
	}
}

func RecordGame(db *pg.DB, record *models.GameRecord) error {
	_, err := db.Model(record).Insert()
	return err
}

func ListRecords(db *pg.DB, limit int) ([]models.GameRecord, error) {
	var records []models.GameRecord
	err := db.Model(&records).Order("finished_at DESC").Limit(limit).Select()
	return records, err
}

type PostgresArchive struct {
	db *pg.DB
}

func NewPostgresArchive(db *pg.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

func (a *PostgresArchive) Record(roomCode string, header models.SnapshotHeader) error {
	record := NewRecord(roomCode, header, time.Now())
	return RecordGame(a.db, &record)
}

func (a *PostgresArchive) Recent(limit int) ([]models.GameRecord, error) {
	return ListRecords(a.db, limit)
}

// MemoryArchive keeps results for the lifetime of the process when no
// database is configured.
type MemoryArchive struct {
	mu      sync.Mutex
	records []models.GameRecord
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{}
}

func (a *MemoryArchive) Record(roomCode string, header models.SnapshotHeader) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, NewRecord(roomCode, header, time.Now()))
	return nil
}

func (a *MemoryArchive) Recent(limit int) ([]models.GameRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []models.GameRecord{}
	for i := len(a.records) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, a.records[i])
	}
	return out, nil
}
