// Package cli implements the pingwatch CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pingwatch",
	Short: "Watch for pings and alert the person at the desk",
	Long: `Pingwatch runs a small daemon that listens on the loopback interface for
pings from other programs, counts them per day and raises an alert for each.
The CLI controls the daemon and shows its counters.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(ackCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(soundCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(triggerCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}
