package ballistic

import (
	"fmt"
	"math"
)

// Mode names a weapon profile kind.
type Mode string

const (
	ModeArcHeight  Mode = "arc_height"
	ModeFixedSpeed Mode = "fixed_speed"
)

// Profile bounds accepted at construction time.
const (
	MinApexHeight = 0.0 // exclusive
	MaxApexHeight = 50.0
	MinSpeed      = 10.0
	MaxSpeed      = 500.0
)

// Profile is a weapon's launch rule. It is either ArcHeight or FixedSpeed.
type Profile interface {
	Mode() Mode
	validate() error
}

// ArcHeight fixes the apex of the arc; the launch speed follows from geometry.
type ArcHeight struct {
	apex    float64
	flatten bool
}

// NewArcHeight builds an arc-height profile. apex must be in (0, 50].
// When flatten is set, the arc is lowered for targets closer than MaxFlattenRange.
func NewArcHeight(apex float64, flatten bool) (ArcHeight, error) {
	p := ArcHeight{apex: apex, flatten: flatten}
	if err := p.validate(); err != nil {
		return ArcHeight{}, err
	}
	return p, nil
}

func (p ArcHeight) Mode() Mode          { return ModeArcHeight }
func (p ArcHeight) ApexHeight() float64 { return p.apex }
func (p ArcHeight) Flatten() bool       { return p.flatten }

func (p ArcHeight) validate() error {
	if math.IsNaN(p.apex) || p.apex <= MinApexHeight || p.apex > MaxApexHeight {
		return fmt.Errorf("%w: apex height %v not in (%v, %v]", ErrInvalidProfile, p.apex, MinApexHeight, MaxApexHeight)
	}
	return nil
}

// FixedSpeed fixes the launch speed; the launch angle follows from geometry.
type FixedSpeed struct {
	speed float64
}

// NewFixedSpeed builds a fixed-speed profile. speed must be in [10, 500].
func NewFixedSpeed(speed float64) (FixedSpeed, error) {
	p := FixedSpeed{speed: speed}
	if err := p.validate(); err != nil {
		return FixedSpeed{}, err
	}
	return p, nil
}

func (p FixedSpeed) Mode() Mode            { return ModeFixedSpeed }
func (p FixedSpeed) InitialSpeed() float64 { return p.speed }

func (p FixedSpeed) validate() error {
	if math.IsNaN(p.speed) || p.speed < MinSpeed || p.speed > MaxSpeed {
		return fmt.Errorf("%w: initial speed %v not in [%v, %v]", ErrInvalidProfile, p.speed, MinSpeed, MaxSpeed)
	}
	return nil
}
