package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's ping counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			st, err := client.GetStatus(ctx)
			if err != nil {
				return err
			}
			if statusJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(st.Monitor)
			}
			printStatus(os.Stdout, st.Monitor)
			return nil
		})
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the raw status as JSON")
}
