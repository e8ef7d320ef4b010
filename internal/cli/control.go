package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Manage the alert sound",
}

var soundToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Turn the alert sound on or off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			reply, err := client.ToggleSound(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Sound is now %s.\n", ui.toggle(reply.SoundEnabled))
			return nil
		})
	},
}

var ackCmd = &cobra.Command{
	Use:     "ack",
	Aliases: []string{"acknowledge"},
	Short:   "Clear the pending ping count",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			st, err := client.Acknowledge(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", ui.ok.Render("Acknowledged."),
				ui.muted.Render(fmt.Sprintf("(today %d)", st.Monitor.TotalCount)))
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Zero today's counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			if _, err := client.Reset(ctx); err != nil {
				return err
			}
			fmt.Println(ui.ok.Render("Counters reset."))
			return nil
		})
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "Close the alert on screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
			reply, err := client.Dismiss(ctx)
			if err != nil {
				return err
			}
			if !reply.Queued {
				fmt.Println(ui.warn.Render("Daemon is busy; dismiss was dropped."))
				return nil
			}
			fmt.Println(ui.ok.Render("Dismiss requested."))
			return nil
		})
	},
}

func init() {
	soundCmd.AddCommand(soundToggleCmd)
}
