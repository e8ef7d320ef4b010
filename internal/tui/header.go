package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

func renderHeader(st *rpc.DaemonStatus, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Pingwatch")

	left := fmt.Sprintf(" %s %s", dot, name)
	right := badgeIdleStyle.Render("● Offline") + " "
	if st != nil {
		left += "  " + hintStyle.Render(fmt.Sprintf("%s  :%d  up %s", st.Version, st.HTTPPort,
			(time.Duration(st.Monitor.UptimeSeconds)*time.Second).String()))
		right = renderAlertBadge(st) + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderAlertBadge(st *rpc.DaemonStatus) string {
	switch {
	case st.Monitor.AlertActive:
		return badgeAlertStyle.Render("● Alert showing")
	case st.Monitor.PendingCount > 0:
		return badgePendingStyle.Render(fmt.Sprintf("● %d pending", st.Monitor.PendingCount))
	default:
		return badgeIdleStyle.Render("● Quiet")
	}
}
