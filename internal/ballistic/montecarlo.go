package ballistic

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReachParams describes the random targets one reachability sweep fires at.
// Targets are spread uniformly over a disk of MaxRadius around Origin, at a
// height between MinRise and MaxRise relative to Origin.
type ReachParams struct {
	Profile   Profile
	Origin    r3.Vec
	Gravity   r3.Vec
	MaxRadius float64
	MinRise   float64
	MaxRise   float64
}

// Summary describes a set of flight times.
type Summary struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// ReachStats summarizes one sweep.
type ReachStats struct {
	Trials    int     `json:"trials"`
	Reachable int     `json:"reachable"`
	Fraction  float64 `json:"fraction"`
	// MaxReach is the farthest horizontal distance of any reachable target.
	MaxReach   float64 `json:"max_reach"`
	FlightTime Summary `json:"flight_time"`
}

func (p ReachParams) validate() error {
	if p.Profile == nil {
		return fmt.Errorf("%w: no profile", ErrInvalidProfile)
	}
	if math.IsNaN(p.MaxRadius) || p.MaxRadius <= 0 {
		return fmt.Errorf("%w: max radius must be > 0", ErrInvalidGeometry)
	}
	if p.MinRise > p.MaxRise {
		return fmt.Errorf("%w: min rise above max rise", ErrInvalidGeometry)
	}
	return nil
}

// randomTarget draws one target position.
func (p ReachParams) randomTarget(rng RandomSource) r3.Vec {
	// sqrt keeps the density uniform over the disk area
	r := p.MaxRadius * math.Sqrt(rng.Float64())
	a := uniform(rng, 0, 2*math.Pi)
	rise := uniform(rng, p.MinRise, p.MaxRise)
	return r3.Add(p.Origin, r3.Vec{X: r * math.Sin(a), Y: rise, Z: r * math.Cos(a)})
}

// RunReachability fires trials shots at random targets and reports how many
// are reachable with the profile. Out-of-range shots are counted, not failed.
func RunReachability(p ReachParams, trials int, rng RandomSource) (ReachStats, error) {
	if trials <= 0 {
		return ReachStats{}, nil
	}
	if err := p.validate(); err != nil {
		return ReachStats{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	stats := ReachStats{Trials: trials}
	times := make([]float64, 0, trials)
	for i := 0; i < trials; i++ {
		target := p.randomTarget(rng)
		sol, err := Solve(Geometry{Origin: p.Origin, Target: target, Gravity: p.Gravity}, p.Profile)
		if errors.Is(err, ErrOutOfRange) {
			continue
		}
		if err != nil {
			return ReachStats{}, err
		}
		stats.Reachable++
		times = append(times, sol.FlightTime)
		stats.MaxReach = math.Max(stats.MaxReach, vmath.HorizontalDistance(p.Origin, target))
	}
	stats.Fraction = float64(stats.Reachable) / float64(trials)
	stats.FlightTime = calcStats(times)
	return stats, nil
}

// calcStats computes mean/variance/percentiles for the samples.
func calcStats(xs []float64) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Summary{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}
