package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/ballistics/internal/service"
)

// Client calls a remote Ballistics service with the service's request types.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) Solve(ctx context.Context, req service.SolveRequest, opts ...grpc.CallOption) (service.SolveResponse, error) {
	var resp service.SolveResponse
	err := c.invoke(ctx, MethodSolve, req, &resp, opts...)
	return resp, err
}

func (c *Client) Sample(ctx context.Context, req service.SolveRequest, opts ...grpc.CallOption) (service.SolveResponse, error) {
	var resp service.SolveResponse
	err := c.invoke(ctx, MethodSample, req, &resp, opts...)
	return resp, err
}

func (c *Client) Reach(ctx context.Context, req service.ReachRequest, opts ...grpc.CallOption) (service.ReachResponse, error) {
	var resp service.ReachResponse
	err := c.invoke(ctx, MethodReach, req, &resp, opts...)
	return resp, err
}

func (c *Client) Weapon(ctx context.Context, name, variant string, opts ...grpc.CallOption) (service.WeaponInfo, error) {
	var resp service.WeaponInfo
	err := c.invoke(ctx, MethodWeapon, WeaponRequest{Name: name, Variant: variant}, &resp, opts...)
	return resp, err
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return err
	}
	return decodeStruct(out, resp)
}
