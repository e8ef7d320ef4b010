// Package monitor holds today's notification counters and their persistence.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// Trigger is the outcome of one accepted ping.
type Trigger struct {
	Count   int // display-only payload from the pinger
	Source  string
	At      time.Time
	Total   int
	Pending int
}

// State is the process-wide record of today's activity. It is created once
// by the daemon and shared by reference; all methods are safe for
// concurrent use.
type State struct {
	mu     sync.RWMutex
	saveMu sync.Mutex

	startedAt time.Time
	now       func() time.Time
	store     Store
	snap      models.Snapshot
}

// Option configures a State.
type Option func(*State)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithStore attaches a persistence backend. Without one, State is memory-only.
func WithStore(store Store) Option {
	return func(s *State) { s.store = store }
}

// WithSoundEnabled sets the initial sound toggle used when no snapshot exists.
func WithSoundEnabled(enabled bool) Option {
	return func(s *State) { s.snap.SoundEnabled = enabled }
}

// New creates a zeroed State for today.
func New(opts ...Option) *State {
	s := &State{
		now:  time.Now,
		snap: models.Snapshot{SoundEnabled: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NopStore{}
	}
	s.startedAt = s.now()
	s.snap = emptySnapshot(dateOf(s.startedAt), s.snap.SoundEnabled)
	return s
}

// Load replaces the counters with the stored snapshot when it belongs to
// today. A snapshot from another day only contributes its sound toggle.
func (s *State) Load() error {
	stored, ok, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := dateOf(s.now())
	if stored.Date != today {
		s.snap = emptySnapshot(today, stored.SoundEnabled)
		return nil
	}

	s.snap = cloneSnapshot(stored)
	s.snap.HourlyCounts, s.snap.TotalCount = reconcileHourly(s.snap.HourlyCounts)
	s.snap.PendingCount = min(max(s.snap.PendingCount, 0), s.snap.TotalCount)
	for source, n := range s.snap.SourceCounts {
		if n < 0 {
			s.snap.SourceCounts[source] = 0
		}
	}
	return nil
}

// Record counts one ping. count is kept for display only; totals always
// advance by one. The returned error reports a persistence failure; the
// in-memory counters are updated regardless.
func (s *State) Record(source string, count int) (Trigger, error) {
	if count < 1 {
		count = 1
	}
	source = NormalizeSource(source)

	s.mu.Lock()
	now := s.now()
	s.rolloverLocked(now)

	s.snap.TotalCount++
	s.snap.PendingCount++
	s.snap.HourlyCounts[now.Hour()]++
	s.snap.SourceCounts[source]++
	s.snap.LastTriggerCount = count
	s.snap.LastTriggerSource = source
	at := now
	s.snap.LastTriggerAt = &at

	trig := Trigger{
		Count:   count,
		Source:  source,
		At:      now,
		Total:   s.snap.TotalCount,
		Pending: s.snap.PendingCount,
	}
	s.mu.Unlock()

	return trig, s.Flush()
}

// ToggleSound flips the sound flag and returns the new value.
func (s *State) ToggleSound() (bool, error) {
	s.mu.Lock()
	s.snap.SoundEnabled = !s.snap.SoundEnabled
	enabled := s.snap.SoundEnabled
	s.mu.Unlock()

	return enabled, s.Flush()
}

// SoundEnabled reports the current sound toggle.
func (s *State) SoundEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.SoundEnabled
}

// Acknowledge zeroes the pending count.
func (s *State) Acknowledge() error {
	s.mu.Lock()
	s.rolloverLocked(s.now())
	s.snap.PendingCount = 0
	s.mu.Unlock()

	return s.Flush()
}

// Reset zeroes every counter for today. The sound toggle is kept.
func (s *State) Reset() error {
	s.mu.Lock()
	s.snap = emptySnapshot(dateOf(s.now()), s.snap.SoundEnabled)
	s.mu.Unlock()

	return s.Flush()
}

// Snapshot returns a copy of today's counters. After midnight, and before
// the first write of the new day, it reports a zeroed view without
// mutating anything.
func (s *State) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := dateOf(s.now())
	if s.snap.Date != today {
		return emptySnapshot(today, s.snap.SoundEnabled)
	}
	return cloneSnapshot(s.snap)
}

// Status returns the snapshot together with uptime information.
func (s *State) Status() models.Status {
	snap := s.Snapshot()
	return models.Status{
		Snapshot:      snap,
		StartedAt:     s.startedAt,
		UptimeSeconds: int64(s.now().Sub(s.startedAt) / time.Second),
	}
}

// StartedAt returns the time the State was created.
func (s *State) StartedAt() time.Time {
	return s.startedAt
}

// History returns per-day totals from the store, newest first.
func (s *State) History(limit int) ([]models.DaySummary, error) {
	return s.store.History(limit)
}

// Flush writes the current counters to the store. Saves are serialized and
// each captures the snapshot while holding the save lock, so the last
// completed save always carries the newest counters.
func (s *State) Flush() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	snap := cloneSnapshot(s.snap)
	s.mu.RUnlock()

	if err := s.store.Save(snap); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Close flushes and releases the store.
func (s *State) Close() error {
	flushErr := s.Flush()
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close state store: %w", err)
	}
	return flushErr
}

func (s *State) rolloverLocked(now time.Time) {
	if today := dateOf(now); s.snap.Date != today {
		s.snap = emptySnapshot(today, s.snap.SoundEnabled)
	}
}

func dateOf(t time.Time) string {
	return t.Format(models.DateLayout)
}

func emptySnapshot(date string, soundEnabled bool) models.Snapshot {
	return models.Snapshot{
		Date:         date,
		SourceCounts: map[string]int{},
		SoundEnabled: soundEnabled,
	}
}

func cloneSnapshot(in models.Snapshot) models.Snapshot {
	out := in
	out.SourceCounts = make(map[string]int, len(in.SourceCounts))
	for k, v := range in.SourceCounts {
		out.SourceCounts[k] = v
	}
	if in.LastTriggerAt != nil {
		at := *in.LastTriggerAt
		out.LastTriggerAt = &at
	}
	return out
}

// reconcileHourly repairs a stored snapshot whose histogram disagrees with
// its total. The histogram wins.
func reconcileHourly(hourly [models.HoursPerDay]int) ([models.HoursPerDay]int, int) {
	sum := 0
	for i, n := range hourly {
		if n < 0 {
			hourly[i] = 0
			continue
		}
		sum += n
	}
	return hourly, sum
}
