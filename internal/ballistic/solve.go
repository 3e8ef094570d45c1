package ballistic

import "fmt"

// Solve dispatches on the profile kind.
// A nil or unknown profile is reported as ErrInvalidProfile.
func Solve(geo Geometry, p Profile) (Solution, error) {
	switch p := p.(type) {
	case ArcHeight:
		return SolveArcHeight(geo, p)
	case FixedSpeed:
		return SolveFixedSpeed(geo, p)
	case nil:
		return Solution{}, fmt.Errorf("%w: no profile", ErrInvalidProfile)
	default:
		return Solution{}, fmt.Errorf("%w: unsupported profile %T", ErrInvalidProfile, p)
	}
}
