package server

import (
	"context"
	"log"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/watchfire-io/pingwatch/internal/buildinfo"
	"github.com/watchfire-io/pingwatch/internal/rpc"
)

const defaultHistoryDays = 7

// daemonService implements rpc.DaemonServiceServer on top of Server.
type daemonService struct {
	server *Server
}

func (d *daemonService) status() *rpc.DaemonStatus {
	return &rpc.DaemonStatus{
		Version:   buildinfo.Version,
		PID:       os.Getpid(),
		HTTPPort:  d.server.HTTPPort(),
		StartedAt: d.server.state.StartedAt(),
		Monitor:   d.server.Status(),
	}
}

func (d *daemonService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*rpc.DaemonStatus, error) {
	return d.status(), nil
}

func (d *daemonService) Trigger(ctx context.Context, req *rpc.TriggerRequest) (*rpc.TriggerReply, error) {
	trig := d.server.Trigger(req.Source, req.Count)
	return &rpc.TriggerReply{
		Source:  trig.Source,
		Count:   trig.Count,
		Total:   trig.Total,
		Pending: trig.Pending,
	}, nil
}

func (d *daemonService) ToggleSound(ctx context.Context, _ *emptypb.Empty) (*rpc.SoundReply, error) {
	return &rpc.SoundReply{SoundEnabled: d.server.ToggleSound()}, nil
}

func (d *daemonService) Acknowledge(ctx context.Context, _ *emptypb.Empty) (*rpc.DaemonStatus, error) {
	d.server.Acknowledge()
	return d.status(), nil
}

func (d *daemonService) Reset(ctx context.Context, _ *emptypb.Empty) (*rpc.DaemonStatus, error) {
	d.server.Reset()
	return d.status(), nil
}

func (d *daemonService) Dismiss(ctx context.Context, _ *emptypb.Empty) (*rpc.DismissReply, error) {
	return &rpc.DismissReply{Queued: d.server.Dismiss()}, nil
}

func (d *daemonService) History(ctx context.Context, req *rpc.HistoryRequest) (*rpc.HistoryReply, error) {
	days := req.Days
	if days < 1 {
		days = defaultHistoryDays
	}
	summaries, err := d.server.History(days)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "history unavailable: %v", err)
	}
	return &rpc.HistoryReply{Days: summaries}, nil
}

func (d *daemonService) Shutdown(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	d.server.RequestShutdown()
	return &emptypb.Empty{}, nil
}

func logErrors(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		log.Printf("[grpc] %s: %v", info.FullMethod, err)
	}
	return resp, err
}
