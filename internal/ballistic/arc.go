package ballistic

import (
	"fmt"
	"math"

	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// Flattening window. Closer than MinFlattenRange the arc is nearly a straight
// line; beyond MaxFlattenRange the profile's apex is used as is.
const (
	MinFlattenRange = 2.0
	MaxFlattenRange = 50.0
	// MinFlattenedApex keeps a flattened apex above zero; a zero apex would
	// need an infinite launch speed.
	MinFlattenedApex = 0.1
)

// SolveArcHeight solves for a launch whose apex is fixed by p.
// It never reports ErrOutOfRange: the speed is whatever the geometry requires.
func SolveArcHeight(geo Geometry, p ArcHeight) (Solution, error) {
	if err := geo.Validate(); err != nil {
		return Solution{}, err
	}
	if err := p.validate(); err != nil {
		return Solution{}, err
	}

	g := geo.g()
	dy := geo.Target.Y - geo.Origin.Y
	dxz := vmath.Flatten(r3.Sub(geo.Target, geo.Origin))

	h := ArcApex(geo, p)

	vy := math.Sqrt(2 * g * h)
	tUp := math.Sqrt(2 * h / g)
	tDown := math.Sqrt(2 * (h - dy) / g)
	t := tUp + tDown

	vxz := r3.Scale(1/t, dxz)
	sol := Solution{
		Origin:     geo.Origin,
		Velocity:   r3.Add(vxz, r3.Scale(vy, vmath.Up)),
		FlightTime: t,
		Gravity:    geo.Gravity,
		Mode:       ModeArcHeight,
		Branch:     BranchArc,
	}
	// finite inputs can still overflow the apex or descent terms
	if !sol.valid() {
		return Solution{}, fmt.Errorf("%w: arc overflows for origin %v target %v", ErrInvalidGeometry, geo.Origin, geo.Target)
	}
	return sol, nil
}

// ArcApex returns the apex height, above the origin, that SolveArcHeight
// aims for: the profile apex, flattened when enabled, then raised by the
// target's height above the origin.
//
// Flattening must run before the elevation correction, otherwise a raised
// target would get its correction scaled down too.
func ArcApex(geo Geometry, p ArcHeight) float64 {
	h := p.apex
	if p.flatten {
		h = flattenApex(h, vmath.Distance(geo.Origin, geo.Target))
	}
	// Targets at or below the origin leave the apex alone.
	if dy := geo.Target.Y - geo.Origin.Y; dy > 0 {
		h += dy
	}
	return h
}

func flattenApex(h, distance float64) float64 {
	pct := vmath.Clamp01((distance - MinFlattenRange) / (MaxFlattenRange - MinFlattenRange))
	return math.Max(h*pct, MinFlattenedApex)
}
