package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/ballistics/internal/service"
)

// WeaponRequest names the record a Weapon call resolves.
type WeaponRequest struct {
	Name    string `json:"name"`
	Variant string `json:"variant,omitempty"`
}

// Server adapts service.Service to BallisticsServer.
type Server struct {
	svc *service.Service
}

var _ BallisticsServer = (*Server)(nil)

func NewServer(svc *service.Service) *Server { return &Server{svc: svc} }

func (s *Server) Solve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req service.SolveRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.svc.Solve(ctx, req)
	return reply(resp, err)
}

func (s *Server) Sample(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req service.SolveRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.svc.Sample(ctx, req)
	return reply(resp, err)
}

func (s *Server) Reach(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req service.ReachRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.svc.Reach(ctx, req)
	return reply(resp, err)
}

func (s *Server) Weapon(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req WeaponRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	info, err := s.svc.Weapon(ctx, req.Name, req.Variant)
	return reply(info, err)
}

func reply(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, statusError(err)
	}
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func statusError(err error) error {
	switch service.Classify(err) {
	case service.KindInvalid:
		return status.Error(codes.InvalidArgument, err.Error())
	case service.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case service.KindCanceled:
		if errors.Is(err, context.DeadlineExceeded) {
			return status.Error(codes.DeadlineExceeded, err.Error())
		}
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// fromStruct decodes a Struct into one of the service's JSON request types,
// rejecting fields the type does not have.
// Numbers travel as doubles, so integers above 2^53 lose precision.
func fromStruct(in *structpb.Struct, dst any) error {
	b, err := protojson.Marshal(in)
	if err == nil {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(dst)
	}
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

// decodeStruct is the lenient form used for responses, so a client keeps
// working against a server that returns newer fields.
func decodeStruct(in *structpb.Struct, dst any) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoggingInterceptor logs each call's method, code and duration.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		level := slog.LevelDebug
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelError
		}
		log.Log(ctx, level, "grpc call", "method", info.FullMethod, "code", code.String(), "took", time.Since(start))
		return resp, err
	}
}
