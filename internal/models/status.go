package models

import "time"

// HoursPerDay is the size of the hourly histogram.
const HoursPerDay = 24

// DateLayout is the layout of the per-day key used for persistence.
const DateLayout = "2006-01-02"

// Snapshot is the persisted form of the monitor counters.
// This corresponds to ~/.pingwatch/state.json.
type Snapshot struct {
	Date              string           `json:"date"`
	TotalCount        int              `json:"total_count"`
	PendingCount      int              `json:"pending_count"`
	HourlyCounts      [HoursPerDay]int `json:"hourly_counts"`
	SourceCounts      map[string]int   `json:"source_counts"`
	SoundEnabled      bool             `json:"sound_enabled"`
	LastTriggerCount  int              `json:"last_trigger_count"`
	LastTriggerSource string           `json:"last_trigger_source"`
	LastTriggerAt     *time.Time       `json:"last_trigger_at,omitempty"`
}

// Status is the payload served by /api/status and the gRPC GetStatus call.
type Status struct {
	Snapshot
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	AlertActive   bool      `json:"alert_active"`
}

// DaySummary is one row of the per-day history.
type DaySummary struct {
	Date         string         `json:"date"`
	TotalCount   int            `json:"total_count"`
	SourceCounts map[string]int `json:"source_counts,omitempty"`
}
