package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "pingwatch.v1.DaemonService"

// Full method names.
const (
	MethodGetStatus   = "/" + ServiceName + "/GetStatus"
	MethodTrigger     = "/" + ServiceName + "/Trigger"
	MethodToggleSound = "/" + ServiceName + "/ToggleSound"
	MethodAcknowledge = "/" + ServiceName + "/Acknowledge"
	MethodReset       = "/" + ServiceName + "/Reset"
	MethodDismiss     = "/" + ServiceName + "/Dismiss"
	MethodHistory     = "/" + ServiceName + "/History"
	MethodShutdown    = "/" + ServiceName + "/Shutdown"
)

// DaemonServiceServer is implemented by the daemon.
type DaemonServiceServer interface {
	GetStatus(context.Context, *emptypb.Empty) (*DaemonStatus, error)
	Trigger(context.Context, *TriggerRequest) (*TriggerReply, error)
	ToggleSound(context.Context, *emptypb.Empty) (*SoundReply, error)
	Acknowledge(context.Context, *emptypb.Empty) (*DaemonStatus, error)
	Reset(context.Context, *emptypb.Empty) (*DaemonStatus, error)
	Dismiss(context.Context, *emptypb.Empty) (*DismissReply, error)
	History(context.Context, *HistoryRequest) (*HistoryReply, error)
	Shutdown(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// RegisterDaemonServiceServer registers srv on s.
func RegisterDaemonServiceServer(s grpc.ServiceRegistrar, srv DaemonServiceServer) {
	s.RegisterService(&daemonServiceDesc, srv)
}

func unary[Req any, Resp any](method string, call func(DaemonServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		impl := srv.(DaemonServiceServer)
		if interceptor == nil {
			return call(impl, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(impl, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var daemonServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DaemonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: unary(MethodGetStatus, DaemonServiceServer.GetStatus)},
		{MethodName: "Trigger", Handler: unary(MethodTrigger, DaemonServiceServer.Trigger)},
		{MethodName: "ToggleSound", Handler: unary(MethodToggleSound, DaemonServiceServer.ToggleSound)},
		{MethodName: "Acknowledge", Handler: unary(MethodAcknowledge, DaemonServiceServer.Acknowledge)},
		{MethodName: "Reset", Handler: unary(MethodReset, DaemonServiceServer.Reset)},
		{MethodName: "Dismiss", Handler: unary(MethodDismiss, DaemonServiceServer.Dismiss)},
		{MethodName: "History", Handler: unary(MethodHistory, DaemonServiceServer.History)},
		{MethodName: "Shutdown", Handler: unary(MethodShutdown, DaemonServiceServer.Shutdown)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pingwatch/v1/daemon.proto",
}

// DaemonServiceClient calls the daemon's control service.
type DaemonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDaemonServiceClient wraps a connection.
func NewDaemonServiceClient(cc grpc.ClientConnInterface) *DaemonServiceClient {
	return &DaemonServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DaemonServiceClient) GetStatus(ctx context.Context, opts ...grpc.CallOption) (*DaemonStatus, error) {
	return invoke[DaemonStatus](ctx, c.cc, MethodGetStatus, &emptypb.Empty{}, opts)
}

func (c *DaemonServiceClient) Trigger(ctx context.Context, in *TriggerRequest, opts ...grpc.CallOption) (*TriggerReply, error) {
	return invoke[TriggerReply](ctx, c.cc, MethodTrigger, in, opts)
}

func (c *DaemonServiceClient) ToggleSound(ctx context.Context, opts ...grpc.CallOption) (*SoundReply, error) {
	return invoke[SoundReply](ctx, c.cc, MethodToggleSound, &emptypb.Empty{}, opts)
}

func (c *DaemonServiceClient) Acknowledge(ctx context.Context, opts ...grpc.CallOption) (*DaemonStatus, error) {
	return invoke[DaemonStatus](ctx, c.cc, MethodAcknowledge, &emptypb.Empty{}, opts)
}

func (c *DaemonServiceClient) Reset(ctx context.Context, opts ...grpc.CallOption) (*DaemonStatus, error) {
	return invoke[DaemonStatus](ctx, c.cc, MethodReset, &emptypb.Empty{}, opts)
}

func (c *DaemonServiceClient) Dismiss(ctx context.Context, opts ...grpc.CallOption) (*DismissReply, error) {
	return invoke[DismissReply](ctx, c.cc, MethodDismiss, &emptypb.Empty{}, opts)
}

func (c *DaemonServiceClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryReply, error) {
	return invoke[HistoryReply](ctx, c.cc, MethodHistory, in, opts)
}

func (c *DaemonServiceClient) Shutdown(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[emptypb.Empty](ctx, c.cc, MethodShutdown, &emptypb.Empty{}, opts)
	return err
}
