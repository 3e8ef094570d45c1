// Command arcplot previews a weapon's trajectory in the terminal.
//
// Arrow keys move the target (left/right: distance, up/down: height);
// Esc, Ctrl-C or q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/xtding233/ballistics/internal/armory"
	"github.com/xtding233/ballistics/internal/plot"
	"github.com/xtding233/ballistics/internal/rpc"
	"github.com/xtding233/ballistics/internal/service"
)

type sampleFunc func(context.Context, service.SolveRequest) (service.SolveResponse, error)

type viewer struct {
	screen tcell.Screen
	sample sampleFunc
	req    service.SolveRequest
}

func main() {
	var (
		configDir = flag.String("config", "config", "weapon config base directory")
		addr      = flag.String("grpc", "", "solve on a remote server at this address instead of locally")
		weapon    = flag.String("weapon", "longbow", "weapon name")
		variant   = flag.String("variant", "", "weapon variant")
		distance  = flag.Float64("distance", 30, "initial horizontal distance to the target")
		height    = flag.Float64("height", 0, "initial target height relative to the shooter")
	)
	flag.Parse()

	sample, closeFn, err := newSampler(*configDir, *addr)
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		sample: sample,
		req: service.SolveRequest{
			Weapon:  *weapon,
			Variant: *variant,
			Target:  service.Vec3{Z: *distance, Y: *height},
		},
	}
	v.run()
}

// newSampler solves locally from configDir, or through a gRPC client when
// addr is set.
func newSampler(configDir, addr string) (sampleFunc, func(), error) {
	if addr == "" {
		// the terminal is ours; keep log output off it
		svc := service.New(armory.NewLoader(configDir), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
		return svc.Sample, func() {}, nil
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	c := rpc.NewClient(conn)
	sample := func(ctx context.Context, req service.SolveRequest) (service.SolveResponse, error) {
		return c.Sample(ctx, req)
	}
	return sample, func() { _ = conn.Close() }, nil
}

func (v *viewer) run() {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
			v.draw()
		case nil:
			// screen finalized
			return
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.req.Target.Z = max(v.req.Target.Z-1, 0)
	case tcell.KeyRight:
		v.req.Target.Z++
	case tcell.KeyUp:
		v.req.Target.Y += 0.5
	case tcell.KeyDown:
		v.req.Target.Y -= 0.5
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}
	return true
}

func (v *viewer) draw() {
	resp, err := v.sample(context.Background(), v.req)
	target := fmt.Sprintf("d=%.0f h=%.1f", v.req.Target.Z, v.req.Target.Y)
	switch {
	case err != nil:
		plot.Draw(v.screen, nil, fmt.Sprintf("%s  %s  error: %v", v.req.Weapon, target, err))
	case resp.Outcome != service.OutcomeHit:
		plot.Draw(v.screen, nil, fmt.Sprintf("%s  %s  out of range", v.req.Weapon, target))
	default:
		pts := make([]r3.Vec, len(resp.Points))
		for i, p := range resp.Points {
			pts[i] = r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
		}
		title := fmt.Sprintf("%s  %s  %s  speed=%.1f elev=%.1f° t=%.2fs apex=%.1f",
			v.req.Weapon, target, resp.Branch, resp.Speed, resp.ElevationDeg, resp.FlightTime, resp.Apex)
		plot.Draw(v.screen, pts, title)
	}
}
