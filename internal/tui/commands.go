package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

const (
	pollInterval  = time.Second
	flashDuration = 2 * time.Second
	callTimeout   = 3 * time.Second
)

// DaemonClient is the subset of the control service the dashboard uses.
type DaemonClient interface {
	GetStatus(ctx context.Context, opts ...grpc.CallOption) (*rpc.DaemonStatus, error)
	ToggleSound(ctx context.Context, opts ...grpc.CallOption) (*rpc.SoundReply, error)
	Acknowledge(ctx context.Context, opts ...grpc.CallOption) (*rpc.DaemonStatus, error)
	Reset(ctx context.Context, opts ...grpc.CallOption) (*rpc.DaemonStatus, error)
	Dismiss(ctx context.Context, opts ...grpc.CallOption) (*rpc.DismissReply, error)
}

func callErr(action string, err error) tea.Msg {
	if s, ok := status.FromError(err); ok && s.Code() == codes.Unavailable {
		return ErrorMsg{Err: fmt.Errorf("daemon unavailable")}
	}
	return ErrorMsg{Err: fmt.Errorf("failed to %s: %w", action, err)}
}

func fetchStatusCmd(client DaemonClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		st, err := client.GetStatus(ctx)
		if err != nil {
			return callErr("load status", err)
		}
		return StatusMsg{Status: st}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearFlashCmd() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func toggleSoundCmd(client DaemonClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		reply, err := client.ToggleSound(ctx)
		if err != nil {
			return callErr("toggle sound", err)
		}
		return SoundToggledMsg{Enabled: reply.SoundEnabled}
	}
}

func acknowledgeCmd(client DaemonClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		st, err := client.Acknowledge(ctx)
		if err != nil {
			return callErr("acknowledge", err)
		}
		return StatusMsg{Status: st}
	}
}

func resetCmd(client DaemonClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		st, err := client.Reset(ctx)
		if err != nil {
			return callErr("reset counters", err)
		}
		return StatusMsg{Status: st}
	}
}

func dismissCmd(client DaemonClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		reply, err := client.Dismiss(ctx)
		if err != nil {
			return callErr("dismiss alert", err)
		}
		return DismissedMsg{Queued: reply.Queued}
	}
}
