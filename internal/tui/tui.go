// Package tui implements the live terminal dashboard for Pingwatch.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/grpc"

	"github.com/watchfire-io/pingwatch/internal/rpc"
)

// Run launches the dashboard against an open daemon connection.
func Run(conn grpc.ClientConnInterface) error {
	p := tea.NewProgram(
		NewModel(rpc.NewDaemonServiceClient(conn)),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
