package ballistic

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRunReachabilityReplays(t *testing.T) {
	params := ReachParams{
		Profile:   mustSpeed(t, 25),
		Gravity:   earth,
		MaxRadius: 120,
		MinRise:   -10,
		MaxRise:   10,
	}
	a, err := RunReachability(params, 500, NewSeededRNG(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunReachability(params, 500, NewSeededRNG(42))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed should replay the same sweep:\n%+v\n%+v", a, b)
	}
	if a.Reachable == 0 || a.Reachable == a.Trials {
		t.Fatalf("expected a partial reach, got %d/%d", a.Reachable, a.Trials)
	}
	if a.MaxReach > MaxLevelRange(25, 9.8)+20 {
		t.Fatalf("max reach %v beyond what 25 m/s can cover", a.MaxReach)
	}
	if a.FlightTime.P50 > a.FlightTime.P90 || a.FlightTime.P90 > a.FlightTime.P99 {
		t.Fatalf("percentiles out of order: %+v", a.FlightTime)
	}
}

func TestRunReachabilityLevelDiskFraction(t *testing.T) {
	// level disk of radius 100; 10 m/s reaches ~10.2 m, about 1% of the area
	params := ReachParams{Profile: mustSpeed(t, 10), Gravity: earth, MaxRadius: 100}
	stats, err := RunReachability(params, 20000, NewSeededRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pow(MaxLevelRange(10, 9.8)/100, 2)
	if math.Abs(stats.Fraction-want) > 0.005 {
		t.Fatalf("fraction %v, want about %v", stats.Fraction, want)
	}
}

func TestRunReachabilityArcAlwaysReaches(t *testing.T) {
	params := ReachParams{
		Profile:   mustArc(t, 8, true),
		Origin:    r3.Vec{Y: 2},
		Gravity:   earth,
		MaxRadius: 300,
		MinRise:   -20,
		MaxRise:   40,
	}
	stats, err := RunReachability(params, 1000, NewSeededRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Fraction != 1 {
		t.Fatalf("arc-height profile should reach everything, got %v", stats.Fraction)
	}
}

func TestRunReachabilityInvalidParams(t *testing.T) {
	if _, err := RunReachability(ReachParams{Gravity: earth, MaxRadius: 1}, 10, nil); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("missing profile: %v", err)
	}
	p := ReachParams{Profile: mustSpeed(t, 20), Gravity: earth}
	if _, err := RunReachability(p, 10, nil); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("zero radius: %v", err)
	}
	p.MaxRadius = 10
	p.Gravity = r3.Vec{Y: 1}
	if _, err := RunReachability(p, 10, NewSeededRNG(3)); !errors.Is(err, ErrInvalidGravity) {
		t.Fatalf("upward gravity: %v", err)
	}
	if got, err := RunReachability(p, 0, nil); err != nil || got != (ReachStats{}) {
		t.Fatalf("zero trials should be a no-op; got %+v, %v", got, err)
	}
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]float64{4, 1, 3, 2})
	if s.Mean != 2.5 || s.Var != 1.25 {
		t.Fatalf("mean/var = %v/%v", s.Mean, s.Var)
	}
	if s.P50 != 2.5 {
		t.Fatalf("p50 = %v", s.P50)
	}
	if got := calcStats(nil); got != (Summary{}) {
		t.Fatalf("empty stats = %+v", got)
	}
	if got := calcStats([]float64{3}); got.P99 != 3 || got.StdDev != 0 {
		t.Fatalf("single sample stats = %+v", got)
	}
}

func TestSweepSources(t *testing.T) {
	a, b := DefaultRNG(), DefaultRNG()
	same := true
	for i := 0; i < 8; i++ {
		x, y := a.Float64(), b.Float64()
		if x < 0 || x >= 1 || y < 0 || y >= 1 {
			t.Fatalf("draw outside [0,1): %v %v", x, y)
		}
		same = same && x == y
	}
	if same {
		t.Fatal("independent default sources produced the same sequence")
	}

	s1, s2 := NewSeededRNG(9), NewSeededRNG(9)
	for i := 0; i < 8; i++ {
		if x, y := s1.Float64(), s2.Float64(); x != y {
			t.Fatalf("draw %d: %v != %v for the same seed", i, x, y)
		}
	}
}
