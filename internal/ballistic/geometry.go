package ballistic

import (
	"fmt"
	"math"

	"github.com/xtding233/ballistics/internal/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// StandardGravity is the default downward acceleration (m/s²).
var StandardGravity = r3.Vec{Y: -9.81}

// Geometry is the snapshot taken at the moment of firing.
type Geometry struct {
	Origin  r3.Vec
	Target  r3.Vec
	Gravity r3.Vec // Y < 0, X == Z == 0
}

// Validate checks that every component is finite and gravity points straight down.
func (g Geometry) Validate() error {
	if !vmath.IsFinite(g.Origin) || !vmath.IsFinite(g.Target) {
		return fmt.Errorf("%w: non-finite origin or target", ErrInvalidGeometry)
	}
	if !vmath.IsFinite(g.Gravity) || g.Gravity.Y >= 0 || g.Gravity.X != 0 || g.Gravity.Z != 0 {
		return fmt.Errorf("%w: got %+v", ErrInvalidGravity, g.Gravity)
	}
	return nil
}

// g returns the gravity magnitude.
func (g Geometry) g() float64 { return -g.Gravity.Y }

// Branch records which closed-form case produced a solution.
type Branch string

const (
	BranchArc      Branch = "arc"
	BranchLevel    Branch = "level"
	BranchBelow    Branch = "below"
	BranchAbove    Branch = "above"
	BranchVertical Branch = "vertical"
)

// Solution is a launch that reaches the target after FlightTime seconds.
// It is never mutated once returned; resolve again if inputs change.
type Solution struct {
	Origin     r3.Vec
	Velocity   r3.Vec
	FlightTime float64
	Gravity    r3.Vec
	Mode       Mode
	Branch     Branch
}

// Speed is the magnitude of the launch velocity.
func (s Solution) Speed() float64 { return r3.Norm(s.Velocity) }

// Elevation is the launch angle above the ground plane, in radians.
func (s Solution) Elevation() float64 { return vmath.Elevation(s.Velocity) }

// Apex is the highest point of the flight above Origin. Zero for a launch
// that never rises.
func (s Solution) Apex() float64 {
	if s.Velocity.Y <= 0 {
		return 0
	}
	return s.Velocity.Y * s.Velocity.Y / (-2 * s.Gravity.Y)
}

// Impact is the position reached at FlightTime.
func (s Solution) Impact() r3.Vec {
	t := s.FlightTime
	return r3.Add(s.Origin, r3.Add(r3.Scale(t, s.Velocity), r3.Scale(0.5*t*t, s.Gravity)))
}

func (s Solution) valid() bool {
	return vmath.IsFinite(s.Velocity) && s.FlightTime > 0 && !math.IsInf(s.FlightTime, 0)
}
