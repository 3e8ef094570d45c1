// types.go
package service

import (
	"github.com/xtding233/ballistics/internal/ballistic"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is the wire form of a position or velocity.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) r3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func vec3(v r3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// ProfileSpec is an inline profile. With a weapon named, its set fields
// override the weapon record; without one it is the whole profile.
type ProfileSpec struct {
	Mode         *string  `json:"mode,omitempty"` // "arc_height" | "fixed_speed"
	ApexHeight   *float64 `json:"apex_height,omitempty"`
	Flatten      *bool    `json:"flatten,omitempty"`
	InitialSpeed *float64 `json:"initial_speed,omitempty"`
}

// SolveRequest is shared by Solve and Sample.
type SolveRequest struct {
	Weapon  string       `json:"weapon,omitempty"`
	Variant string       `json:"variant,omitempty"`
	Profile *ProfileSpec `json:"profile,omitempty"`
	Origin  Vec3         `json:"origin"`
	Target  Vec3         `json:"target"`
	Gravity *float64     `json:"gravity,omitempty"` // signed, e.g. -9.81
	Samples *int         `json:"samples,omitempty"`
}

// Outcome values of a SolveResponse.
const (
	OutcomeHit        = "hit"
	OutcomeOutOfRange = "out_of_range"
)

type SolveResponse struct {
	Outcome      string  `json:"outcome"`
	Weapon       string  `json:"weapon,omitempty"`
	Variant      string  `json:"variant,omitempty"`
	Version      string  `json:"version,omitempty"`
	Mode         string  `json:"mode"`
	Branch       string  `json:"branch,omitempty"`
	Velocity     *Vec3   `json:"velocity,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	ElevationDeg float64 `json:"elevation_deg,omitempty"`
	FlightTime   float64 `json:"flight_time,omitempty"`
	Apex         float64 `json:"apex,omitempty"`
	Impact       *Vec3   `json:"impact,omitempty"`
	Points       []Vec3  `json:"points,omitempty"`
}

// ReachRequest drives a reachability sweep around Origin.
type ReachRequest struct {
	Weapon    string       `json:"weapon,omitempty"`
	Variant   string       `json:"variant,omitempty"`
	Profile   *ProfileSpec `json:"profile,omitempty"`
	Origin    Vec3         `json:"origin"`
	Gravity   *float64     `json:"gravity,omitempty"`
	MaxRadius float64      `json:"max_radius"`
	MinRise   float64      `json:"min_rise"`
	MaxRise   float64      `json:"max_rise"`
	Trials    int          `json:"trials"`
	Seed      *uint64      `json:"seed,omitempty"` // replayable when set
}

type ReachResponse struct {
	Weapon  string `json:"weapon,omitempty"`
	Variant string `json:"variant,omitempty"`
	Mode    string `json:"mode"`
	ballistic.ReachStats
}

// WeaponInfo is the resolved view of one weapon record.
type WeaponInfo struct {
	Name         string   `json:"name"`
	Variant      string   `json:"variant,omitempty"`
	Version      string   `json:"version,omitempty"`
	Mode         string   `json:"mode"`
	ApexHeight   *float64 `json:"apex_height,omitempty"`
	Flatten      *bool    `json:"flatten,omitempty"`
	InitialSpeed *float64 `json:"initial_speed,omitempty"`
	Gravity      float64  `json:"gravity"`
	Samples      int      `json:"samples"`
	Notes        string   `json:"notes,omitempty"`
	// MaxLevelRange is the farthest same-height shot, fixed-speed only.
	MaxLevelRange *float64 `json:"max_level_range,omitempty"`
}
