// Package rpc serves the solver over gRPC. Messages are google.protobuf.Struct
// values carrying the same JSON documents as the HTTP API.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "ballistics.v1.Ballistics"

// Full method names.
const (
	MethodSolve  = "/" + ServiceName + "/Solve"
	MethodSample = "/" + ServiceName + "/Sample"
	MethodReach  = "/" + ServiceName + "/Reach"
	MethodWeapon = "/" + ServiceName + "/Weapon"
)

// BallisticsServer is the server API for the Ballistics service.
type BallisticsServer interface {
	Solve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Sample(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reach(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Weapon(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(BallisticsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BallisticsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BallisticsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the Ballistics service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BallisticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Solve", Handler: unaryHandler(MethodSolve, BallisticsServer.Solve)},
		{MethodName: "Sample", Handler: unaryHandler(MethodSample, BallisticsServer.Sample)},
		{MethodName: "Reach", Handler: unaryHandler(MethodReach, BallisticsServer.Reach)},
		{MethodName: "Weapon", Handler: unaryHandler(MethodWeapon, BallisticsServer.Weapon)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterBallisticsServer registers srv on s.
func RegisterBallisticsServer(s grpc.ServiceRegistrar, srv BallisticsServer) {
	s.RegisterService(&ServiceDesc, srv)
}
