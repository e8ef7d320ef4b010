package cli

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/rpc"
)

const callTimeout = 5 * time.Second

// connectDaemon establishes a gRPC connection to the running daemon.
func connectDaemon() (*grpc.ClientConn, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to load daemon info: %w", err)
	}
	if !running || info == nil {
		return nil, fmt.Errorf("%w (start it with `pingwatch daemon start`)", config.ErrDaemonNotRunning)
	}

	addr := fmt.Sprintf("%s:%d", info.Host, info.Port)
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(rpc.CallOption()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}

	return conn, nil
}

// withDaemon runs fn against the daemon with a bounded deadline.
func withDaemon(fn func(ctx context.Context, client *rpc.DaemonServiceClient) error) error {
	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return fn(ctx, rpc.NewDaemonServiceClient(conn))
}
