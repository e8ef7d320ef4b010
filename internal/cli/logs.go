package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/config"
)

var (
	logsList  bool
	logsLines int
)

var daemonLogsCmd = &cobra.Command{
	Use:   "logs [log-id]",
	Short: "Show the daemon log (latest run by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := config.ListLogs()
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println(ui.muted.Render("No daemon logs yet."))
			return nil
		}

		out := cmd.OutOrStdout()
		if logsList {
			for _, e := range logs {
				fmt.Fprintf(out, "%s  %s  %s\n", ui.val.Render(e.LogID),
					ui.key.Render(e.Mode), ui.muted.Render(e.Version))
			}
			return nil
		}

		id := logs[0].LogID
		if len(args) == 1 {
			id = args[0]
		}
		_, body, err := config.ReadLog(id)
		if err != nil {
			return err
		}
		fmt.Fprint(out, tailLines(body, logsLines))
		return nil
	},
}

func init() {
	daemonLogsCmd.Flags().BoolVarP(&logsList, "list", "l", false, "List available logs")
	daemonLogsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "Number of trailing lines to show (0 for all)")
	daemonCmd.AddCommand(daemonLogsCmd)
}

// tailLines returns the last n lines of body; n <= 0 returns everything.
func tailLines(body string, n int) string {
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return ""
	}
	lines := strings.Split(body, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}
