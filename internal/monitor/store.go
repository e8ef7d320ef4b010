package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/models"
)

// Store persists snapshots keyed by calendar date.
type Store interface {
	// Load returns the most recent snapshot. ok is false when nothing has
	// been stored yet.
	Load() (snap models.Snapshot, ok bool, err error)
	Save(snap models.Snapshot) error
	// History returns up to limit days, newest first.
	History(limit int) ([]models.DaySummary, error)
	Close() error
}

// NopStore keeps nothing.
type NopStore struct{}

func (NopStore) Load() (models.Snapshot, bool, error)     { return models.Snapshot{}, false, nil }
func (NopStore) Save(models.Snapshot) error               { return nil }
func (NopStore) History(int) ([]models.DaySummary, error) { return nil, nil }
func (NopStore) Close() error                             { return nil }

// JSONStore overwrites a single JSON file with the latest snapshot.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the snapshot file.
func (s *JSONStore) Load() (models.Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return snap, true, nil
}

// Save replaces the snapshot file wholesale.
func (s *JSONStore) Save(snap models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return config.WriteFileAtomic(s.path, data, 0644)
}

// History reports the single day held in the file.
func (s *JSONStore) History(limit int) ([]models.DaySummary, error) {
	snap, ok, err := s.Load()
	if err != nil || !ok || limit < 1 {
		return nil, err
	}
	return []models.DaySummary{summarize(snap)}, nil
}

// Close is a no-op.
func (s *JSONStore) Close() error {
	return nil
}

func summarize(snap models.Snapshot) models.DaySummary {
	return models.DaySummary{
		Date:         snap.Date,
		TotalCount:   snap.TotalCount,
		SourceCounts: snap.SourceCounts,
	}
}
