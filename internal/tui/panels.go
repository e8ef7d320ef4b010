package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/pingwatch/internal/models"
	"github.com/watchfire-io/pingwatch/internal/rpc"
)

const (
	chartHeight = 8
	splitRatio  = 0.6
)

// panelLayout holds computed dimensions for the two-panel layout.
type panelLayout struct {
	leftWidth     int
	rightWidth    int
	contentHeight int
}

func computeLayout(width, height int) panelLayout {
	// 1 line header, 1 line status bar
	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	usable := width - 1 // divider
	leftWidth := int(float64(usable) * splitRatio)
	rightWidth := usable - leftWidth

	if leftWidth < 10 {
		leftWidth = 10
	}
	if rightWidth < 10 {
		rightWidth = 10
	}

	return panelLayout{
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
		contentHeight: contentHeight,
	}
}

func renderPanels(leftContent, rightContent string, layout panelLayout) string {
	leftInner := max(layout.leftWidth-2, 1)
	rightInner := max(layout.rightWidth-2, 1)
	innerHeight := max(layout.contentHeight-2, 1)

	left := panelBorderStyle.
		Width(leftInner).
		Height(innerHeight).
		Render(truncateContent(leftContent, leftInner, innerHeight))

	right := panelBorderStyle.
		Width(rightInner).
		Height(innerHeight).
		Render(truncateContent(rightContent, rightInner, innerHeight))

	divider := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(strings.TrimSuffix(strings.Repeat("│\n", lipgloss.Height(left)), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// truncateContent ensures content fits within the given dimensions.
func truncateContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	if len(lines) > height {
		lines = lines[:height]
	}

	// ANSI-aware
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}

	return strings.Join(lines, "\n")
}

func renderCounters(st *rpc.DaemonStatus, width int) string {
	if st == nil {
		return hintStyle.Render("Waiting for the daemon...")
	}
	mon := st.Monitor

	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Today "+mon.Date) + "\n\n")
	b.WriteString(counterLine("Total", bigNumberStyle.Render(fmt.Sprint(mon.TotalCount))))
	pending := fmt.Sprint(mon.PendingCount)
	if mon.PendingCount > 0 {
		pending = pendingStyle.Render(pending)
	}
	b.WriteString(counterLine("Pending", pending))
	b.WriteString(counterLine("Sound", toggleText(mon.SoundEnabled)))
	if mon.LastTriggerAt != nil {
		b.WriteString(counterLine("Last ping", fmt.Sprintf("%s x%d at %s",
			mon.LastTriggerSource, mon.LastTriggerCount, mon.LastTriggerAt.Local().Format("15:04:05"))))
	}
	b.WriteString("\n" + sectionHeaderStyle.Render("Pings per hour") + "\n")
	b.WriteString(renderHourly(mon.HourlyCounts, chartHeight, width))
	return b.String()
}

func counterLine(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func toggleText(on bool) string {
	if on {
		return toggleOnStyle.Render("on")
	}
	return toggleOffStyle.Render("off")
}

// renderHourly draws a vertical bar per hour, two columns wide when the
// width allows it.
func renderHourly(hourly [models.HoursPerDay]int, height, width int) string {
	colWidth := 1
	if width >= models.HoursPerDay*2 {
		colWidth = 2
	}

	peak := 0
	for _, n := range hourly {
		peak = max(peak, n)
	}

	var rows []string
	for row := height; row >= 1; row-- {
		var b strings.Builder
		for _, n := range hourly {
			cell := " "
			if peak > 0 && n > 0 && (n*height+peak-1)/peak >= row {
				cell = "█"
			}
			b.WriteString(cell)
			if colWidth == 2 {
				b.WriteString(" ")
			}
		}
		rows = append(rows, barStyle.Render(b.String()))
	}

	axis := make([]byte, models.HoursPerDay*colWidth)
	for i := range axis {
		axis[i] = ' '
	}
	for _, h := range []int{0, 6, 12, 18} {
		label := fmt.Sprint(h)
		copy(axis[h*colWidth:], label)
	}
	rows = append(rows, hintStyle.Render(string(axis)))
	return strings.Join(rows, "\n")
}

type sourceRow struct {
	source string
	count  int
}

func rankSources(counts map[string]int) []sourceRow {
	rows := make([]sourceRow, 0, len(counts))
	for s, n := range counts {
		rows = append(rows, sourceRow{s, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].source < rows[j].source
	})
	return rows
}

func renderSources(st *rpc.DaemonStatus) string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Sources") + "\n\n")
	if st == nil || len(st.Monitor.SourceCounts) == 0 {
		b.WriteString(hintStyle.Render("No pings yet today"))
		return b.String()
	}
	for _, r := range rankSources(st.Monitor.SourceCounts) {
		fmt.Fprintf(&b, "%s %s\n", countStyle.Render(fmt.Sprintf("%4d", r.count)), r.source)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
