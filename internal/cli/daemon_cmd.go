package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/rpc"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the Pingwatch daemon",
	Long:  `Manage the Pingwatch daemon process.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running && info != nil {
		fmt.Printf("Daemon is already running (PID %d, pings on port %d).\n", info.PID, info.HTTPPort)
		return nil
	}

	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	p := startProgress("Starting daemon...")
	if err := startDaemon(); err != nil {
		p.done(ui.fail.Render("failed"))
		return err
	}

	_, fresh, err := GetDaemonStatus()
	if err != nil || fresh == nil {
		p.done(ui.ok.Render("Daemon started."))
		return nil
	}
	p.done(ui.ok.Render(fmt.Sprintf("Daemon started (PID %d, pings on port %d).", fresh.PID, fresh.HTTPPort)))
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	running, info, err := GetDaemonStatus()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println("Daemon is running.")
	fmt.Printf("  %s %s\n", ui.key.Render("Version:   "), ui.val.Render(fmt.Sprint(info.Version)))
	fmt.Printf("  %s %s\n", ui.key.Render("Dashboard: "), ui.val.Render(fmt.Sprintf("http://127.0.0.1:%d/", info.HTTPPort)))
	fmt.Printf("  %s %d\n", ui.key.Render("Control:   "), info.Port)
	fmt.Printf("  %s %d\n", ui.key.Render("PID:       "), info.PID)
	fmt.Printf("  %s %s\n", ui.key.Render("Uptime:    "), uptime)
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	p := startProgress("Stopping daemon...")

	// Ask politely over gRPC first so the alert loop tears down on its own
	// goroutine; fall back to SIGTERM.
	err = withDaemon(func(ctx context.Context, client *rpc.DaemonServiceClient) error {
		return client.Shutdown(ctx)
	})
	if err != nil {
		process, findErr := os.FindProcess(info.PID)
		if findErr != nil {
			p.done(ui.fail.Render("failed"))
			return fmt.Errorf("failed to find daemon process: %w", findErr)
		}
		if sigErr := process.Signal(syscall.SIGTERM); sigErr != nil {
			p.done(ui.fail.Render("failed"))
			return fmt.Errorf("failed to send stop signal: %w", sigErr)
		}
	}

	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsDaemonRunning()
		if err == nil && !stillRunning {
			p.done(ui.ok.Render("Daemon stopped."))
			return nil
		}
	}

	p.done(ui.fail.Render("timed out"))
	return fmt.Errorf("daemon did not stop within timeout")
}
