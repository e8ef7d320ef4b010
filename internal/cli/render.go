package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/watchfire-io/pingwatch/internal/models"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the hourly histogram as one block character per hour.
func sparkline(hourly [models.HoursPerDay]int) string {
	peak := 0
	for _, n := range hourly {
		if n > peak {
			peak = n
		}
	}

	var b strings.Builder
	for _, n := range hourly {
		switch {
		case n == 0:
			b.WriteRune(' ')
		case peak == 0:
			b.WriteRune(sparkLevels[0])
		default:
			idx := (n*len(sparkLevels) - 1) / peak
			b.WriteRune(sparkLevels[idx])
		}
	}
	return b.String()
}

type sourceCount struct {
	Source string
	Count  int
}

// rankSources orders sources by count, busiest first, ties by name.
func rankSources(counts map[string]int) []sourceCount {
	out := make([]sourceCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, sourceCount{s, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	return out
}

func printStatus(w io.Writer, st models.Status) {
	fmt.Fprintf(w, "%s %s\n", ui.heading.Render("Today"), ui.val.Render(st.Date))
	fmt.Fprintf(w, "  %s %d\n", ui.key.Render("Total:    "), st.TotalCount)
	fmt.Fprintf(w, "  %s %s\n", ui.key.Render("Pending:  "), ui.pending(st.PendingCount))
	fmt.Fprintf(w, "  %s %s\n", ui.key.Render("Sound:    "), ui.toggle(st.SoundEnabled))
	fmt.Fprintf(w, "  %s %s\n", ui.key.Render("Alert:    "), ui.toggle(st.AlertActive))
	if st.LastTriggerAt != nil {
		fmt.Fprintf(w, "  %s %s x%d at %s\n", ui.key.Render("Last ping:"),
			ui.val.Render(st.LastTriggerSource), st.LastTriggerCount,
			st.LastTriggerAt.Local().Format("15:04:05"))
	}
	fmt.Fprintf(w, "  %s %s\n", ui.key.Render("Uptime:   "),
		(time.Duration(st.UptimeSeconds) * time.Second).String())

	fmt.Fprintf(w, "\n  %s |%s|\n", ui.key.Render("Hourly"), sparkline(st.HourlyCounts))
	fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", len("Hourly")), ui.muted.Render("0     6     12    18   23"))

	if len(st.SourceCounts) > 0 {
		fmt.Fprintf(w, "\n  %s\n", ui.key.Render("Sources"))
		for _, sc := range rankSources(st.SourceCounts) {
			fmt.Fprintf(w, "    %4d  %s\n", sc.Count, sc.Source)
		}
	}
}

func printHistory(w io.Writer, days []models.DaySummary) {
	if len(days) == 0 {
		fmt.Fprintln(w, ui.muted.Render("No history recorded yet."))
		return
	}
	for _, d := range days {
		fmt.Fprintf(w, "%s  %s", ui.val.Render(d.Date), ui.heading.Render(fmt.Sprintf("%5d", d.TotalCount)))
		ranked := rankSources(d.SourceCounts)
		parts := make([]string, 0, len(ranked))
		for _, sc := range ranked {
			parts = append(parts, fmt.Sprintf("%s=%d", sc.Source, sc.Count))
		}
		if len(parts) > 0 {
			fmt.Fprintf(w, "  %s", ui.muted.Render(strings.Join(parts, " ")))
		}
		fmt.Fprintln(w)
	}
}
