package rpc

import (
	"context"
	"log/slog"
	"math"
	"net"
	"path/filepath"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/ballistics/internal/armory"
	"github.com/xtding233/ballistics/internal/service"
)

func dial(t *testing.T) (*Client, *grpc.ClientConn) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	svc := service.New(armory.NewLoader(filepath.Join("..", "..", "config")), nil, log)

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(log)))
	RegisterBallisticsServer(s, NewServer(svc))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn), conn
}

func TestSolveOverGRPC(t *testing.T) {
	c, _ := dial(t)
	ctx := context.Background()

	resp, err := c.Solve(ctx, service.SolveRequest{Weapon: "crossbow", Target: service.Vec3{X: 12, Y: -2, Z: 5}})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Outcome != service.OutcomeHit || resp.Branch != "below" {
		t.Fatalf("resp = %+v", resp)
	}
	if math.Abs(resp.Impact.X-12) > 1e-6 || math.Abs(resp.Impact.Z-5) > 1e-6 {
		t.Fatalf("impact = %+v", resp.Impact)
	}

	resp, err = c.Solve(ctx, service.SolveRequest{Weapon: "crossbow", Target: service.Vec3{Z: 800}})
	if err != nil || resp.Outcome != service.OutcomeOutOfRange {
		t.Fatalf("out of range: %+v, %v", resp, err)
	}
}

func TestSampleAndReachOverGRPC(t *testing.T) {
	c, _ := dial(t)
	ctx := context.Background()

	n := 12
	resp, err := c.Sample(ctx, service.SolveRequest{Weapon: "longbow", Target: service.Vec3{X: 18}, Samples: &n})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Points) != n+1 {
		t.Fatalf("points = %d", len(resp.Points))
	}

	seed := uint64(3)
	req := service.ReachRequest{Weapon: "crossbow", MaxRadius: 250, Trials: 300, Seed: &seed}
	a, err := c.Reach(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Reach(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if a.Reachable != b.Reachable || a.Trials != 300 || a.Reachable == 0 {
		t.Fatalf("reach = %+v vs %+v", a, b)
	}
}

func TestWeaponOverGRPC(t *testing.T) {
	c, _ := dial(t)
	info, err := c.Weapon(context.Background(), "crossbow", "light")
	if err != nil {
		t.Fatal(err)
	}
	if info.InitialSpeed == nil || *info.InitialSpeed != 20 {
		t.Fatalf("info = %+v", info)
	}
}

func TestStatusCodes(t *testing.T) {
	c, conn := dial(t)
	ctx := context.Background()

	_, err := c.Solve(ctx, service.SolveRequest{Weapon: "ballista"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unknown weapon: %v", err)
	}
	_, err = c.Solve(ctx, service.SolveRequest{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("empty request: %v", err)
	}
	_, err = c.Weapon(ctx, "", "")
	if status.Code(err) != codes.NotFound {
		t.Fatalf("empty weapon name: %v", err)
	}

	// a field of the wrong JSON type fails decoding on the server
	bad, _ := structpb.NewStruct(map[string]any{"weapon": 7.0})
	err = conn.Invoke(ctx, MethodSolve, bad, new(structpb.Struct))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("bad field type: %v", err)
	}

	// fields the request type lacks are rejected as on HTTP
	extra, _ := structpb.NewStruct(map[string]any{"weapon": "crossbow", "bogus": 1.0})
	err = conn.Invoke(ctx, MethodSolve, extra, new(structpb.Struct))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("unknown field: %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := c.Solve(canceled, service.SolveRequest{Weapon: "crossbow"}); status.Code(err) != codes.Canceled {
		t.Fatalf("canceled: %v", err)
	}
}
