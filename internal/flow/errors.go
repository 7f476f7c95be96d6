package flow

import "errors"

var (
	// ErrStreamProperty is returned when an annulus-level property is read
	// from a per-stream station.
	ErrStreamProperty = errors.New("flow: annulus property is undefined on a stream station")

	// ErrRadiusUnset indicates a radius-dependent property was read before
	// the mean radius was assigned.
	ErrRadiusUnset = errors.New("flow: mean radius not set")

	// ErrRadiusSet indicates SetRadius was called on a station that already has a radius.
	ErrRadiusSet = errors.New("flow: mean radius already set")

	ErrMassFlowUnset = errors.New("flow: mass flow not set")
)
