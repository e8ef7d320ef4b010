package tray

import (
	"errors"

	"github.com/getlantern/systray"

	"github.com/watchfire-io/pingwatch/internal/daemon/alert"
)

// ErrNotReady is returned when the tray menu has not been built yet.
var ErrNotReady = errors.New("tray not ready")

// Presenter shows the active alert as a badge next to the tray icon and
// exposes a Dismiss entry in the menu.
type Presenter struct{}

// Show badges the icon and reveals the Dismiss entry.
func (Presenter) Show(id string, v alert.View) error {
	if !isReady() {
		return ErrNotReady
	}
	render(v)
	dismissItem.Show()
	return nil
}

// Update refreshes the badge.
func (Presenter) Update(id string, v alert.View) error {
	if !isReady() {
		return ErrNotReady
	}
	render(v)
	return nil
}

// Close clears the badge and hides the Dismiss entry.
func (Presenter) Close(id string) error {
	if !isReady() {
		return ErrNotReady
	}
	systray.SetTitle("")
	dismissItem.Hide()
	return nil
}

func render(v alert.View) {
	systray.SetTitle(formatBadge(v.Pending))
	systray.SetTooltip(formatTooltip(v.Total, v.Pending))
	countsItem.SetTitle(formatCounts(v.Total, v.Pending))
}

func isReady() bool {
	select {
	case <-ready:
		return true
	default:
		return false
	}
}
