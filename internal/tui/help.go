package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpKey struct {
	key  string
	desc string
}

var helpKeys = []helpKey{
	{"s", "Turn the alert sound on or off"},
	{"a", "Acknowledge: clear the pending count"},
	{"d", "Dismiss the alert on screen"},
	{"r", "Reset today's counters (asks first)"},
	{"Ctrl+r", "Refresh now"},
	{"?", "Toggle help"},
	{"q / Ctrl+c", "Quit"},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := min(56, width-4)
	if maxWidth < 30 {
		maxWidth = 30
	}

	lines := []string{overlayTitleStyle.Render("Keyboard Shortcuts")}
	for _, k := range helpKeys {
		keyCol := lipgloss.NewStyle().
			Width(14).
			Foreground(colorWhite).
			Bold(true).
			Render(k.key)
		lines = append(lines, "  "+keyCol+hintStyle.Render(k.desc))
	}
	lines = append(lines, "", hintStyle.Render("Press Esc or ? to close"))

	return overlayStyle.Width(maxWidth).Render(strings.Join(lines, "\n"))
}
