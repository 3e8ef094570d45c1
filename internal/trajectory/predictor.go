// Package trajectory previews a launch solution as discrete points along its
// closed-form path.
package trajectory

import (
	"errors"
	"iter"

	"github.com/xtding233/ballistics/internal/ballistic"
	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSamples is the preview resolution used when a caller has no preference.
const DefaultSamples = 30

var ErrSampleCount = errors.New("sample count must be >= 1")

// Position returns where the projectile is t seconds after launch:
// origin + v·t + gravity·t²/2.
func Position(sol ballistic.Solution, t float64) r3.Vec {
	disp := r3.Add(r3.Scale(t, sol.Velocity), r3.Scale(t*t/2, sol.Gravity))
	return r3.Add(sol.Origin, disp)
}

// Velocity returns the projectile velocity t seconds after launch.
func Velocity(sol ballistic.Solution, t float64) r3.Vec {
	return r3.Add(sol.Velocity, r3.Scale(t, sol.Gravity))
}

// Facing is the unit direction of travel at t, used to align a projectile
// body with its motion.
func Facing(sol ballistic.Solution, t float64) r3.Vec {
	return vmath.Normalize(Velocity(sol, t))
}

// Points yields n+1 evenly timed positions from launch to FlightTime.
// The sequence can be ranged over any number of times.
func Points(sol ballistic.Solution, n int) iter.Seq2[int, r3.Vec] {
	return func(yield func(int, r3.Vec) bool) {
		if n < 1 {
			return
		}
		for i := 0; i <= n; i++ {
			if !yield(i, Position(sol, stepTime(sol, i, n))) {
				return
			}
		}
	}
}

// Sample returns the n+1 positions of Points.
func Sample(sol ballistic.Solution, n int) ([]r3.Vec, error) {
	if n < 1 {
		return nil, ErrSampleCount
	}
	out := make([]r3.Vec, 0, n+1)
	for _, p := range Points(sol, n) {
		out = append(out, p)
	}
	return out, nil
}

func stepTime(sol ballistic.Solution, i, n int) float64 {
	if i == n {
		return sol.FlightTime
	}
	return float64(i) / float64(n) * sol.FlightTime
}
