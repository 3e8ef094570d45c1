package armory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtding233/ballistics/internal/ballistic"
)

var ErrInvalidConfig = errors.New("weapon config validation failed")

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	switch ballistic.Mode(cfg.Mode) {
	case ballistic.ModeArcHeight:
		// need arc.apex_height in (0, 50]
		if cfg.Arc == nil || cfg.Arc.ApexHeight == nil {
			errs = append(errs, "arc.apex_height is required for mode=arc_height")
		} else if h := *cfg.Arc.ApexHeight; !(h > ballistic.MinApexHeight && h <= ballistic.MaxApexHeight) {
			errs = append(errs, fmt.Sprintf("arc.apex_height must be in (%v,%v]", ballistic.MinApexHeight, ballistic.MaxApexHeight))
		}
	case ballistic.ModeFixedSpeed:
		// need speed.initial_speed in [10, 500]
		if cfg.Speed == nil || cfg.Speed.InitialSpeed == nil {
			errs = append(errs, "speed.initial_speed is required for mode=fixed_speed")
		} else if v := *cfg.Speed.InitialSpeed; !(v >= ballistic.MinSpeed && v <= ballistic.MaxSpeed) {
			errs = append(errs, fmt.Sprintf("speed.initial_speed must be in [%v,%v]", ballistic.MinSpeed, ballistic.MaxSpeed))
		}
	case "":
		errs = append(errs, "mode is required")
	default:
		errs = append(errs, "mode must be one of: arc_height, fixed_speed")
	}

	// gravity is the signed vertical acceleration
	if cfg.Gravity != nil && !(*cfg.Gravity < 0) {
		errs = append(errs, "gravity must be < 0")
	}

	if cfg.Preview != nil && cfg.Preview.Samples != nil && *cfg.Preview.Samples < 1 {
		errs = append(errs, "preview.samples must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
