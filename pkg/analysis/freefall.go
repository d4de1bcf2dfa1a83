package analysis

import (
	"fmt"
	"math"

	"github.com/chrissnell/ballast/pkg/buoyancy"
	"gonum.org/v1/gonum/floats"
)

// FreefallDepth returns the shallowest depth in meters at which the net
// force turns negative, scanning from the surface to maxDepth at the
// given resolution and linearly interpolating between the bracketing
// samples. A sampled force of exactly zero is the neutral-buoyancy
// boundary and is returned as the transition depth; freefall proper
// begins strictly below it.
//
// If no sign change occurs the returned error is a *NoTransitionError
// wrapping ErrAlwaysFloats or ErrAlwaysSinks.
func FreefallDepth(p buoyancy.Parameters, state buoyancy.LungState, maxDepth, resolution float64) (float64, error) {
	if maxDepth <= 0 {
		return 0, fmt.Errorf("analysis: max depth must be positive, got %g", maxDepth)
	}
	if resolution <= 0 {
		return 0, fmt.Errorf("analysis: resolution must be positive, got %g", resolution)
	}

	n := int(math.Ceil(maxDepth/resolution)) + 1
	depths := floats.Span(make([]float64, n), 0, maxDepth)

	var prevDepth, prevForce float64
	for i, d := range depths {
		f := buoyancy.NetForce(p, d, state)
		if f == 0 {
			return d, nil
		}
		if f < 0 {
			if i == 0 {
				return 0, &NoTransitionError{MaxDepth: maxDepth, Mode: ErrAlwaysSinks}
			}
			// Zero crossing between the previous (positive) and current
			// (negative) sample.
			return prevDepth + (d-prevDepth)*prevForce/(prevForce-f), nil
		}
		prevDepth, prevForce = d, f
	}

	return 0, &NoTransitionError{MaxDepth: maxDepth, Mode: ErrAlwaysFloats}
}
