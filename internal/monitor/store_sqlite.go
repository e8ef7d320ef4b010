package monitor

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// SQLiteStore keeps one row per day, which also serves the history view.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens (and migrates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	// A single connection keeps writes ordered.
	db.SetMaxOpenConns(1)

	if err := migrateStateDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func migrateStateDB(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS daily_state (
			date TEXT PRIMARY KEY,
			total_count INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("state store migration failed: %w", err)
		}
	}
	return nil
}

// Load returns the newest day's snapshot.
func (s *SQLiteStore) Load() (models.Snapshot, bool, error) {
	if s == nil || s.db == nil {
		return models.Snapshot{}, false, nil
	}

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM daily_state ORDER BY date DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("failed to query state: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("failed to parse stored state: %w", err)
	}
	return snap, true, nil
}

// Save upserts the row for the snapshot's date.
func (s *SQLiteStore) Save(snap models.Snapshot) error {
	if s == nil || s.db == nil {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO daily_state (date, total_count, payload, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_count = excluded.total_count,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		snap.Date, snap.TotalCount, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save state for %s: %w", snap.Date, err)
	}
	return nil
}

// History returns up to limit days, newest first.
func (s *SQLiteStore) History(limit int) ([]models.DaySummary, error) {
	if s == nil || s.db == nil || limit < 1 {
		return nil, nil
	}

	rows, err := s.db.Query(`SELECT payload FROM daily_state ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var days []models.DaySummary
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var snap models.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("failed to parse stored state: %w", err)
		}
		days = append(days, summarize(snap))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
