// resolve.go
package armory

import (
	"fmt"

	"github.com/xtding233/ballistics/internal/ballistic"
	"github.com/xtding233/ballistics/internal/trajectory"
	"gonum.org/v1/gonum/spatial/r3"
)

// Overrides carries per-request values layered over the weapon record.
type Overrides struct {
	Mode         *string
	ApexHeight   *float64
	Flatten      *bool
	InitialSpeed *float64
	Gravity      *float64
	Samples      *int
}

// Params are the normalized values a solve runs with.
type Params struct {
	Profile ballistic.Profile
	Gravity r3.Vec
	Samples int
	Version string // effective config version for tracing
}

type Resolver interface {
	// Returns merged RawConfig and normalized Params.
	// An empty weapon resolves the default record plus overrides.
	Resolve(weapon, variant string, o Overrides) (RawConfig, Params, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → weapon → variant → overrides into Params.
func (l *Loader) Resolve(weapon, variant string, o Overrides) (RawConfig, Params, error) {
	var (
		merged RawConfig
		err    error
	)
	if weapon == "" {
		merged, _, err = readYAML(l.paths.DefaultPath())
		if err != nil {
			return RawConfig{}, Params{}, fmt.Errorf("read default: %w", err)
		}
	} else {
		merged, err = l.LoadMerged(weapon, variant)
		if err != nil {
			return RawConfig{}, Params{}, err
		}
	}
	merged = mergeRaw(merged, o.raw())
	params, err := Build(merged)
	if err != nil {
		return merged, Params{}, err
	}
	return merged, params, nil
}

func (o Overrides) raw() RawConfig {
	var r RawConfig
	if o.Mode != nil {
		r.Mode = *o.Mode
	}
	r.Gravity = o.Gravity
	if o.ApexHeight != nil || o.Flatten != nil {
		r.Arc = &ArcConfig{ApexHeight: o.ApexHeight, Flatten: o.Flatten}
	}
	if o.InitialSpeed != nil {
		r.Speed = &SpeedConfig{InitialSpeed: o.InitialSpeed}
	}
	if o.Samples != nil {
		r.Preview = &PreviewConfig{Samples: o.Samples}
	}
	return r
}

// Build validates a merged record and turns it into Params.
func Build(cfg RawConfig) (Params, error) {
	if err := ValidateRaw(cfg); err != nil {
		return Params{}, err
	}

	p := Params{
		Gravity: ballistic.StandardGravity,
		Samples: trajectory.DefaultSamples,
		Version: cfg.Version,
	}
	if cfg.Gravity != nil {
		p.Gravity = r3.Vec{Y: *cfg.Gravity}
	}
	if cfg.Preview != nil && cfg.Preview.Samples != nil {
		p.Samples = *cfg.Preview.Samples
	}

	var err error
	switch ballistic.Mode(cfg.Mode) {
	case ballistic.ModeArcHeight:
		flatten := cfg.Arc.Flatten != nil && *cfg.Arc.Flatten
		p.Profile, err = ballistic.NewArcHeight(*cfg.Arc.ApexHeight, flatten)
	case ballistic.ModeFixedSpeed:
		p.Profile, err = ballistic.NewFixedSpeed(*cfg.Speed.InitialSpeed)
	}
	if err != nil {
		return Params{}, err
	}
	return p, nil
}
