// Package analysis derives dive-planning answers from the buoyancy model:
// the freefall transition depth, the lead weight giving neutral buoyancy
// at a target depth, and the propulsion energy of a round trip. Every
// function here is a thin solver over buoyancy.NetForce; none of them
// duplicate the volume math or mutate the parameter set they are given.
package analysis

import (
	"errors"
	"fmt"
)

// Domain errors for the analysis solvers.
var (
	// ErrAlwaysFloats indicates net force stayed positive over the whole scan range.
	ErrAlwaysFloats = errors.New("analysis: diver is positively buoyant throughout the depth range")

	// ErrAlwaysSinks indicates net force is already negative at the surface.
	ErrAlwaysSinks = errors.New("analysis: diver is negatively buoyant at the surface")

	// ErrInvalidTarget indicates a negative target depth.
	ErrInvalidTarget = errors.New("analysis: target depth must be non-negative")

	// ErrInfeasibleWeight indicates neutral buoyancy at the target would need negative lead.
	ErrInfeasibleWeight = errors.New("analysis: diver is already negative at the target depth with no lead")
)

// NoTransitionError reports a freefall scan that found no sign change.
// It wraps ErrAlwaysFloats or ErrAlwaysSinks so callers can distinguish
// the two with errors.Is.
type NoTransitionError struct {
	MaxDepth float64
	Mode     error
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("%v (scanned 0-%.1f m)", e.Mode, e.MaxDepth)
}

func (e *NoTransitionError) Unwrap() error {
	return e.Mode
}
