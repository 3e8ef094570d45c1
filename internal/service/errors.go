package service

import (
	"context"
	"errors"

	"github.com/xtding233/ballistics/internal/armory"
	"github.com/xtding233/ballistics/internal/ballistic"
	"github.com/xtding233/ballistics/internal/trajectory"
)

// Kind groups errors the way both transports report them.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindCanceled
)

// Classify maps an error returned by Service onto a Kind.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, armory.ErrUnknownWeapon):
		return KindNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, armory.ErrInvalidConfig),
		errors.Is(err, ballistic.ErrInvalidProfile),
		errors.Is(err, ballistic.ErrInvalidGeometry),
		errors.Is(err, ballistic.ErrInvalidGravity),
		errors.Is(err, trajectory.ErrSampleCount):
		return KindInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	return KindInternal
}
