// Package tray implements the system tray icon and menu for the daemon.
package tray

import "github.com/watchfire-io/pingwatch/internal/models"

// DaemonState is the daemon as seen from the tray menu.
type DaemonState interface {
	HTTPPort() int
	Status() models.Status
	ToggleSound() bool
	Acknowledge() models.Status
	Reset() models.Status
	Dismiss() bool
	RequestShutdown()
}
