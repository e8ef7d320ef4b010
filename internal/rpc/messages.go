package rpc

import (
	"time"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// DaemonStatus describes the running daemon and today's counters.
type DaemonStatus struct {
	Version   string        `json:"version"`
	PID       int           `json:"pid"`
	HTTPPort  int           `json:"http_port"`
	StartedAt time.Time     `json:"started_at"`
	Monitor   models.Status `json:"monitor"`
}

// TriggerRequest is a ping delivered over the control channel.
type TriggerRequest struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// TriggerReply reports the counters after a ping.
type TriggerReply struct {
	Source  string `json:"source"`
	Count   int    `json:"count"`
	Total   int    `json:"total"`
	Pending int    `json:"pending"`
}

// SoundReply carries the sound toggle.
type SoundReply struct {
	SoundEnabled bool `json:"sound_enabled"`
}

// DismissReply reports whether the dismiss event was queued.
type DismissReply struct {
	Queued bool `json:"queued"`
}

// HistoryRequest asks for up to Days days of totals.
type HistoryRequest struct {
	Days int `json:"days"`
}

// HistoryReply lists per-day totals, newest first.
type HistoryReply struct {
	Days []models.DaySummary `json:"days"`
}
