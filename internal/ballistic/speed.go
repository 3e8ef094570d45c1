package ballistic

import (
	"math"

	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// LevelBand is the elevation difference under which shooter and target
	// are treated as standing on the same level. The below/above identities
	// become ill-conditioned as the difference approaches zero.
	LevelBand = 0.1
	// minHorizontal is the horizontal distance under which a shot is vertical.
	minHorizontal = 1e-6
)

// SolveFixedSpeed solves for the launch angle of a projectile fired at the
// profile's speed. It reports ErrOutOfRange when no real angle reaches the target.
func SolveFixedSpeed(geo Geometry, p FixedSpeed) (Solution, error) {
	if err := geo.Validate(); err != nil {
		return Solution{}, err
	}
	if err := p.validate(); err != nil {
		return Solution{}, err
	}

	g := geo.g()
	v := p.speed
	d := vmath.HorizontalDistance(geo.Origin, geo.Target)
	dy := geo.Origin.Y - geo.Target.Y

	if d < minHorizontal {
		return solveVertical(geo, v, dy)
	}

	var (
		theta  float64
		branch Branch
		ok     bool
	)
	switch {
	case math.Abs(dy) < LevelBand:
		theta, ok = levelAngle(d, g, v)
		branch = BranchLevel
	case dy > 0:
		theta, ok = belowAngle(d, dy, g, v)
		branch = BranchBelow
	default:
		theta, ok = aboveAngle(d, -dy, g, v)
		branch = BranchAbove
	}
	if !ok {
		return Solution{}, ErrOutOfRange
	}

	sol := Solution{
		Origin:     geo.Origin,
		Velocity:   launchVelocity(v, theta, r3.Sub(geo.Target, geo.Origin)),
		FlightTime: d / (v * math.Cos(theta)),
		Gravity:    geo.Gravity,
		Mode:       ModeFixedSpeed,
		Branch:     branch,
	}
	if !sol.valid() {
		return Solution{}, ErrOutOfRange
	}
	return sol, nil
}

// levelAngle uses the range equation sin(2θ) = d·g/v².
// The low arc is returned; the high arc is its complement.
func levelAngle(d, g, v float64) (float64, bool) {
	s := d * g / (v * v)
	if s < -1 || s > 1 {
		return 0, false
	}
	return math.Asin(s) / 2, true
}

// belowAngle solves d·sin2θ + h·cos2θ = 2A − h for a target h below the
// shooter, with A = g·d²/(2v²), as R·cos(2θ − φ) with φ = atan(d/h).
// The root returned is the low arc, which meets levelAngle as h → 0.
func belowAngle(d, h, g, v float64) (float64, bool) {
	phi := math.Atan(d / h)
	a := g * d * d / (2 * v * v)
	c := (2*a - h) / math.Hypot(d, h)
	if c < -1 || c > 1 {
		return 0, false
	}
	return (phi - math.Acos(c)) / 2, true
}

// aboveAngle solves tmp·z² − d·z + (h + tmp) = 0 for z = tanθ, with a target
// h above the shooter and tmp = (g/2)(d/v)².
// Both roots hit the target; the flatter one is returned so the arc meets
// levelAngle as h → 0.
func aboveAngle(d, h, g, v float64) (float64, bool) {
	tmp := g / 2 * (d / v) * (d / v)
	a, b, c := tmp, d, h+tmp
	disc := math.Sqrt(b*b - 4*a*c)
	r1 := (b + disc) / (2 * a)
	r2 := (b - disc) / (2 * a)
	nan1, nan2 := math.IsNaN(r1), math.IsNaN(r2)
	switch {
	case nan1 && nan2:
		return 0, false
	case nan1:
		return math.Atan(r2), true
	case nan2:
		return math.Atan(r1), true
	}
	return math.Min(math.Atan(r1), math.Atan(r2)), true
}

// launchVelocity composes a launch of speed v, raised by theta, heading toward
// the horizontal projection of toTarget. Elevation and heading are applied as
// two separate rotations so the vertical component stays v·sinθ whatever the
// heading.
func launchVelocity(v, theta float64, toTarget r3.Vec) r3.Vec {
	vel := r3.Scale(v, vmath.Forward)
	vel = vmath.Pitch(vel, theta)
	return vmath.Yaw(vel, vmath.Heading(toTarget))
}

// solveVertical handles a target straight above or below the origin.
// h is origin.y − target.y.
func solveVertical(geo Geometry, v, h float64) (Solution, error) {
	g := geo.g()
	var (
		t   float64
		dir = vmath.Up
	)
	switch {
	case math.Abs(h) < LevelBand:
		// origin and target coincide: nothing to fly.
		return Solution{}, ErrOutOfRange
	case h > 0:
		// h = v·t + g·t²/2
		t = (-v + math.Sqrt(v*v+2*g*h)) / g
		dir = r3.Scale(-1, vmath.Up)
	default:
		// −h = v·t − g·t²/2; first crossing on the way up.
		disc := v*v + 2*g*h
		if disc < 0 {
			return Solution{}, ErrOutOfRange
		}
		t = (v - math.Sqrt(disc)) / g
	}
	sol := Solution{
		Origin:     geo.Origin,
		Velocity:   r3.Scale(v, dir),
		FlightTime: t,
		Gravity:    geo.Gravity,
		Mode:       ModeFixedSpeed,
		Branch:     BranchVertical,
	}
	if !sol.valid() {
		return Solution{}, ErrOutOfRange
	}
	return sol, nil
}

// MaxLevelRange is the farthest level target reachable at speed v under
// gravity magnitude g (a 45° launch).
func MaxLevelRange(v, g float64) float64 {
	return v * v / g
}
