package trajectory

import (
	"errors"
	"math"
	"testing"

	"github.com/xtding233/ballistics/internal/ballistic"
	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

var earth = r3.Vec{Y: -9.8}

func solve(t *testing.T, geo ballistic.Geometry, p ballistic.Profile, perr error) ballistic.Solution {
	t.Helper()
	if perr != nil {
		t.Fatal(perr)
	}
	sol, err := ballistic.Solve(geo, p)
	if err != nil {
		t.Fatal(err)
	}
	return sol
}

func TestSampleCountAndEndpoints(t *testing.T) {
	geo := ballistic.Geometry{Origin: r3.Vec{X: 1, Y: 2, Z: 3}, Target: r3.Vec{X: -10, Y: 2, Z: 30}, Gravity: earth}
	p, err := ballistic.NewFixedSpeed(30)
	sol := solve(t, geo, p, err)

	for _, n := range []int{1, 2, 7, 30, 100} {
		pts, err := Sample(sol, n)
		if err != nil {
			t.Fatal(err)
		}
		if len(pts) != n+1 {
			t.Fatalf("n=%d: got %d points", n, len(pts))
		}
		if pts[0] != geo.Origin {
			t.Fatalf("first point %+v, want origin %+v", pts[0], geo.Origin)
		}
		if !vmath.ApproxEqual(pts[n], geo.Target, 1e-6) {
			t.Fatalf("last point %+v, want target %+v", pts[n], geo.Target)
		}
	}
}

func TestSampleRejectsZeroCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := Sample(ballistic.Solution{}, n); !errors.Is(err, ErrSampleCount) {
			t.Fatalf("n=%d: expected ErrSampleCount, got %v", n, err)
		}
	}
}

func TestPointsRestartable(t *testing.T) {
	geo := ballistic.Geometry{Target: r3.Vec{Z: 20}, Gravity: earth}
	p, err := ballistic.NewArcHeight(10, false)
	sol := solve(t, geo, p, err)

	seq := Points(sol, 12)
	var first, second []r3.Vec
	for _, pt := range seq {
		first = append(first, pt)
	}
	for _, pt := range seq {
		second = append(second, pt)
	}
	if len(first) != 13 || len(first) != len(second) {
		t.Fatalf("lengths %d/%d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs between passes", i)
		}
	}

	// early stop
	count := 0
	for i := range seq {
		if i == 3 {
			break
		}
		count++
	}
	if count != 3 {
		t.Fatalf("early break visited %d points", count)
	}
}

func TestSampleReachesArcApex(t *testing.T) {
	geo := ballistic.Geometry{Origin: r3.Vec{Y: 1}, Target: r3.Vec{X: 15, Y: 4, Z: 15}, Gravity: earth}
	p, err := ballistic.NewArcHeight(6, false)
	sol := solve(t, geo, p, err)

	pts, err := Sample(sol, 2000)
	if err != nil {
		t.Fatal(err)
	}
	top := math.Inf(-1)
	for _, pt := range pts {
		top = math.Max(top, pt.Y-geo.Origin.Y)
	}
	want := ballistic.ArcApex(geo, p)
	if math.Abs(top-want) > 1e-3 {
		t.Fatalf("highest sample %v, want apex %v", top, want)
	}
}

func TestVelocityAndFacing(t *testing.T) {
	sol := ballistic.Solution{Velocity: r3.Vec{Y: 10, Z: 10}, Gravity: earth, FlightTime: 2}
	tApex := 10 / 9.8
	if v := Velocity(sol, tApex); math.Abs(v.Y) > 1e-12 {
		t.Fatalf("vertical speed at apex = %v", v.Y)
	}
	f := Facing(sol, tApex)
	if !vmath.ApproxEqual(f, r3.Vec{Z: 1}, 1e-12) {
		t.Fatalf("facing at apex = %+v", f)
	}
	if got := Position(sol, 0); got != sol.Origin {
		t.Fatalf("position at launch = %+v", got)
	}
}
