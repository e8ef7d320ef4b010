package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

var (
	triggerSource string
	triggerCount  int
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Send a ping to the daemon",
	Long: `Send a ping to the daemon as if another program had called the
/api/trigger_alarm endpoint. Useful to check that alerts appear.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			reply, err := client.Trigger(ctx, &rpc.TriggerRequest{Source: triggerSource, Count: triggerCount})
			if err != nil {
				return err
			}
			fmt.Printf("%s %s x%d %s\n",
				ui.ok.Render("Ping recorded:"),
				ui.val.Render(reply.Source), reply.Count,
				ui.muted.Render(fmt.Sprintf("(today %d, pending %d)", reply.Total, reply.Pending)))
			return nil
		})
	},
}

func init() {
	triggerCmd.Flags().StringVarP(&triggerSource, "source", "s", "", "Source label for the ping")
	triggerCmd.Flags().IntVarP(&triggerCount, "count", "c", 1, "Item count shown in the alert")
}
