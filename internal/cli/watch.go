package cli

import (
	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live terminal dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := EnsureDaemon(); err != nil {
			return err
		}
		conn, err := connectDaemon()
		if err != nil {
			return err
		}
		defer conn.Close()
		return tui.Run(conn)
	},
}
