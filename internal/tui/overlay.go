package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// resetSGR stops styling from the dimmed background leaking into the box.
const resetSGR = "\x1b[0m"

// placeModal draws box centred over a dimmed copy of screen. Rows of the
// box that fall below the screen are dropped.
func placeModal(screen, box string, width, height int) string {
	rows := strings.Split(screen, "\n")
	for i := range rows {
		rows[i] = overlayDimStyle.Render(rows[i])
	}

	boxRows := strings.Split(box, "\n")
	top := max((height-len(boxRows))/2, 1)
	left := max((width-lipgloss.Width(box))/2, 1)

	for i, boxRow := range boxRows {
		if top+i >= len(rows) {
			break
		}
		rows[top+i] = spliceRow(rows[top+i], boxRow, left)
	}
	return strings.Join(rows, "\n")
}

// spliceRow replaces the cells of row starting at col with insert, keeping
// whatever is visible to its right.
func spliceRow(row, insert string, col int) string {
	rowWidth := lipgloss.Width(row)
	end := col + lipgloss.Width(insert)

	var b strings.Builder
	b.WriteString(ansi.Truncate(row, col, ""))
	b.WriteString(resetSGR)
	b.WriteString(insert)
	b.WriteString(resetSGR)
	if end < rowWidth {
		b.WriteString(ansi.Cut(row, end, rowWidth))
	}
	return b.String()
}
