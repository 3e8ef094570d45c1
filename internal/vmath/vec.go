// Package vmath provides the small set of vector helpers the solvers share,
// on top of gonum's r3 value type.
//
// Axes follow a Y-up convention: Y is vertical, X and Z span the ground plane,
// and +Z is the canonical forward direction.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// Up is the unit vertical axis.
	Up = r3.Vec{Y: 1}
	// Forward is the canonical heading before any yaw is applied.
	Forward = r3.Vec{Z: 1}
)

// NewVec creates a vector with the given components
func NewVec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

// Flatten zeroes the vertical component.
func Flatten(v r3.Vec) r3.Vec { return r3.Vec{X: v.X, Z: v.Z} }

// Distance returns the euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 { return r3.Norm(r3.Sub(b, a)) }

// HorizontalDistance is Distance measured in the ground plane.
func HorizontalDistance(a, b r3.Vec) float64 {
	return Distance(Flatten(a), Flatten(b))
}

// Normalize returns a unit vector in the direction of v, or the zero vector
// when v has no length.
func Normalize(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// Clamp01 clamps x to [0, 1].
func Clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// Heading returns the yaw, in radians, that turns Forward onto the horizontal
// projection of dir. Zero when dir is vertical.
func Heading(dir r3.Vec) float64 {
	if dir.X == 0 && dir.Z == 0 {
		return 0
	}
	return math.Atan2(dir.X, dir.Z)
}

// Elevation returns the angle of v above the ground plane in radians.
func Elevation(v r3.Vec) float64 {
	return math.Atan2(v.Y, math.Hypot(v.X, v.Z))
}

// Pitch rotates v upward by theta radians about the horizontal axis
// perpendicular to Forward. For v = Forward the result keeps a vertical
// component of sin(theta) regardless of any later yaw.
func Pitch(v r3.Vec, theta float64) r3.Vec {
	axis := r3.Cross(Forward, Up)
	return r3.NewRotation(theta, axis).Rotate(v)
}

// Yaw rotates v about Up by psi radians.
func Yaw(v r3.Vec, psi float64) r3.Vec {
	return r3.NewRotation(psi, Up).Rotate(v)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v r3.Vec) bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether a and b are within tol of each other.
func ApproxEqual(a, b r3.Vec, tol float64) bool {
	return Distance(a, b) <= tol
}
