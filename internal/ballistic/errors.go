package ballistic

import "errors"

// ErrOutOfRange reports that no real launch angle or speed reaches the target
// with the given profile. It is an expected outcome: callers hold fire.
var ErrOutOfRange = errors.New("target out of range")

var (
	ErrInvalidProfile  = errors.New("invalid weapon profile")
	ErrInvalidGravity  = errors.New("invalid gravity; must point straight down")
	ErrInvalidGeometry = errors.New("invalid launch geometry")
)
