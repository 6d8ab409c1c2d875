package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avolkov/ledger-service/internal/models"
)

// SQLStore keeps the snapshot in a single-row postgres table. The payload
// is the same JSON document the file backend writes, so either backend
// can read a snapshot produced by the other.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore initializes the store and creates the snapshot table if it
// does not exist.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	query := `
		CREATE TABLE IF NOT EXISTS ledger_snapshot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload JSONB NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Load reads the stored snapshot row. An empty table yields an empty
// snapshot.
func (s *SQLStore) Load() (models.Snapshot, error) {
	var payload []byte
	query := `SELECT payload FROM ledger_snapshot WHERE id = 1`
	err := s.db.QueryRow(query).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.EmptySnapshot(), nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

// Save upserts the snapshot row.
func (s *SQLStore) Save(snapshot models.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	query := `
		INSERT INTO ledger_snapshot (id, payload, saved_at)
		VALUES (1, $1, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET payload = $1, saved_at = CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(query, payload); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
