package tui

import "github.com/watchfire-io/pingwatch/internal/rpc"

// StatusMsg carries a fresh daemon status.
type StatusMsg struct {
	Status *rpc.DaemonStatus
}

// SoundToggledMsg reports the sound flag after a toggle.
type SoundToggledMsg struct {
	Enabled bool
}

// DismissedMsg reports whether a dismiss request was queued.
type DismissedMsg struct {
	Queued bool
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// TickMsg is a periodic tick for polling.
type TickMsg struct{}

// ClearFlashMsg clears the transient status bar note.
type ClearFlashMsg struct{}
