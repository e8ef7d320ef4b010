// Package cmd holds the pingwatchd command line.
package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/config"
)

var (
	foreground   bool
	controlPort  int
	httpPort     int
	settingsPath string
)

var rootCmd = &cobra.Command{
	Use:           "pingwatchd",
	Short:         "Pingwatch daemon: receives pings and raises alerts",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetPrefix("[pingwatchd] ")
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		return runDaemon()
	},
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground without the system tray")
	rootCmd.Flags().IntVar(&controlPort, "port", 0, "gRPC control port (0 for dynamic allocation)")
	rootCmd.Flags().IntVar(&httpPort, "http-port", 0, "Ping listener base port (overrides settings)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file (default ~/.pingwatch/settings.yaml)")
}

// Execute runs the daemon command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Printf("Error: %v", err)
	}
	return err
}

func resolveSettingsPath() (string, error) {
	if settingsPath != "" {
		return settingsPath, nil
	}
	return config.GlobalSettingsFile()
}
