package buoyancy

import "gonum.org/v1/gonum/floats"

// DepthSample pairs a depth with the net force for each lung state,
// indexed by LungState. Samples are derived values: they are recomputed
// on demand and never cached across parameter changes.
type DepthSample struct {
	Depth float64    // m
	Force [3]float64 // kgf
}

// Curve evaluates the net force at evenly spaced depths from the surface
// to maxDepth, for all three lung states. samples must be at least 2.
// The result is what a plotting front end consumes directly.
func Curve(p Parameters, maxDepth float64, samples int) []DepthSample {
	if samples < 2 {
		samples = 2
	}
	depths := floats.Span(make([]float64, samples), 0, maxDepth)

	out := make([]DepthSample, len(depths))
	for i, d := range depths {
		s := DepthSample{Depth: d}
		for _, state := range LungStates {
			s.Force[state] = NetForce(p, d, state)
		}
		out[i] = s
	}
	return out
}
