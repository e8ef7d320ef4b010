package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/models"
)

func sampleSnapshot(date string, total int) models.Snapshot {
	var hourly [models.HoursPerDay]int
	hourly[10] = total
	at := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	return models.Snapshot{
		Date:              date,
		TotalCount:        total,
		PendingCount:      total,
		HourlyCounts:      hourly,
		SourceCounts:      map[string]int{"erp": total},
		SoundEnabled:      true,
		LastTriggerCount:  2,
		LastTriggerSource: "erp",
		LastTriggerAt:     &at,
	}
}

func TestJSONStore(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "state.json"))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleSnapshot("2026-10-19", 4)
	require.NoError(t, store.Save(want))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.HourlyCounts, got.HourlyCounts)
	assert.Equal(t, want.SourceCounts, got.SourceCounts)
	require.NotNil(t, got.LastTriggerAt)
	assert.True(t, want.LastTriggerAt.Equal(*got.LastTriggerAt))

	days, err := store.History(7)
	require.NoError(t, err)
	assert.Equal(t, []models.DaySummary{{Date: "2026-10-19", TotalCount: 4, SourceCounts: map[string]int{"erp": 4}}}, days)
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, _, err := NewJSONStore(path).Load()
	assert.Error(t, err)
}

func TestJSONStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, NewJSONStore(path).Save(sampleSnapshot("2026-10-19", 1)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date": "2026-10-19"`)
	assert.Contains(t, string(data), `"hourly_counts"`)
	assert.Contains(t, string(data), `"source_counts"`)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(sampleSnapshot("2026-10-17", 2)))
	require.NoError(t, store.Save(sampleSnapshot("2026-10-18", 5)))
	require.NoError(t, store.Save(sampleSnapshot("2026-10-19", 1)))
	require.NoError(t, store.Save(sampleSnapshot("2026-10-19", 3)))

	latest, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-10-19", latest.Date)
	assert.Equal(t, 3, latest.TotalCount)

	days, err := store.History(2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-10-19", days[0].Date)
	assert.Equal(t, 3, days[0].TotalCount)
	assert.Equal(t, "2026-10-18", days[1].Date)
	assert.Equal(t, 5, days[1].TotalCount)
}

func TestSQLiteStoreBacksState(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(morning())

	store, err := OpenSQLiteStore(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	state := New(WithClock(clock.Now), WithStore(store))
	_, err = state.Record("erp", 1)
	require.NoError(t, err)
	require.NoError(t, state.Close())

	reopened, err := OpenSQLiteStore(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	again := New(WithClock(clock.Now), WithStore(reopened))
	require.NoError(t, again.Load())
	assert.Equal(t, 1, again.Snapshot().TotalCount)
}

func TestNilSQLiteStore(t *testing.T) {
	var store *SQLiteStore
	_, ok, err := store.Load()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, store.Save(models.Snapshot{}))
	assert.NoError(t, store.Close())
}
