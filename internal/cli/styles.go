package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette keyed by what a color means to a pingwatch operator rather than
// by hue. Amber is the alarm accent shared with the tray icon.
var (
	inkColor     = lipgloss.AdaptiveColor{Light: "235", Dark: "254"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "244", Dark: "243"}
	quietColor   = lipgloss.AdaptiveColor{Light: "29", Dark: "78"}
	alarmColor   = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	failureColor = lipgloss.AdaptiveColor{Light: "124", Dark: "203"}
)

type theme struct {
	heading lipgloss.Style
	version lipgloss.Style
	key     lipgloss.Style
	val     lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

var ui = theme{
	heading: lipgloss.NewStyle().Bold(true).Foreground(alarmColor),
	version: lipgloss.NewStyle().Foreground(quietColor),
	key:     lipgloss.NewStyle().Foreground(mutedColor),
	val:     lipgloss.NewStyle().Foreground(inkColor),
	ok:      lipgloss.NewStyle().Foreground(quietColor),
	warn:    lipgloss.NewStyle().Bold(true).Foreground(alarmColor),
	fail:    lipgloss.NewStyle().Bold(true).Foreground(failureColor),
	muted:   lipgloss.NewStyle().Foreground(mutedColor),
}

// toggle renders an on/off setting.
func (t theme) toggle(on bool) string {
	if on {
		return t.ok.Render("on")
	}
	return t.muted.Render("off")
}

// pending highlights unacknowledged pings; zero stays plain.
func (t theme) pending(n int) string {
	if n > 0 {
		return t.warn.Render(strconv.Itoa(n))
	}
	return strconv.Itoa(n)
}
