package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

var (
	historyDays int
	historyJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show per-day ping totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			reply, err := client.History(ctx, &rpc.HistoryRequest{Days: historyDays})
			if err != nil {
				return err
			}
			if historyJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(reply.Days)
			}
			printHistory(os.Stdout, reply.Days)
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 7, "Number of days to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print history as JSON")
}
