package analysis

import (
	"fmt"
	"math"

	"github.com/chrissnell/ballast/pkg/buoyancy"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EnergyUse returns the propulsion energy in watt-hours for a round trip
// to the given depth. On the way down the diver works against positive
// (upward) net force; on the way up, against negative net force. Each
// depth segment contributes |F|·Δd joules when the force opposes travel
// and nothing when it assists.
func EnergyUse(p buoyancy.Parameters, depth float64, state buoyancy.LungState, step float64) (float64, error) {
	if depth <= 0 {
		return 0, fmt.Errorf("analysis: dive depth must be positive, got %g", depth)
	}
	if step <= 0 {
		return 0, fmt.Errorf("analysis: integration step must be positive, got %g", step)
	}

	n := int(math.Ceil(depth/step)) + 1
	depths := floats.Span(make([]float64, n), 0, depth)

	var joules float64
	for i := 1; i < len(depths); i++ {
		seg := depths[i] - depths[i-1]

		// Descent: force at the top of the segment
		if f := buoyancy.Newtons(buoyancy.NetForce(p, depths[i-1], state)); f > 0 {
			joules += f * seg
		}
		// Ascent: force at the bottom of the segment
		if f := buoyancy.Newtons(buoyancy.NetForce(p, depths[i], state)); f < 0 {
			joules += -f * seg
		}
	}

	return joules / 3600, nil
}

// OptimalWeightResult reports an energy-vs-weight scan and its refined minimum
type OptimalWeightResult struct {
	Weights  []float64 // candidate lead weights, kg
	Energies []float64 // round-trip energy per candidate, Wh
	Weight   float64   // energy-optimal lead weight, kg
	Energy   float64   // energy at the optimum, Wh
}

// DefaultWeights returns the standard candidate grid, 0 to 12 kg in 0.2 kg steps
func DefaultWeights() []float64 {
	return floats.Span(make([]float64, 61), 0, 12)
}

// OptimalWeight scans the candidate lead weights, computes the round-trip
// energy for each, and refines the minimum with a quadratic fit through
// the three samples bracketing it. A minimum on the grid boundary is
// returned unrefined.
func OptimalWeight(p buoyancy.Parameters, depth float64, state buoyancy.LungState, step float64, weights []float64) (OptimalWeightResult, error) {
	if len(weights) < 2 {
		return OptimalWeightResult{}, fmt.Errorf("analysis: need at least 2 candidate weights, got %d", len(weights))
	}

	energies := make([]float64, len(weights))
	for i, w := range weights {
		e, err := EnergyUse(p.WithLeadWeight(w), depth, state, step)
		if err != nil {
			return OptimalWeightResult{}, err
		}
		energies[i] = e
	}

	minIdx := floats.MinIdx(energies)
	result := OptimalWeightResult{
		Weights:  weights,
		Energies: energies,
		Weight:   weights[minIdx],
		Energy:   energies[minIdx],
	}

	if minIdx == 0 || minIdx == len(weights)-1 {
		return result, nil
	}

	w, e, err := quadraticVertex(weights[minIdx-1:minIdx+2], energies[minIdx-1:minIdx+2])
	if err != nil {
		// Degenerate bracket (flat or collinear); keep the grid minimum
		return result, nil
	}
	result.Weight, result.Energy = w, e
	return result, nil
}

// quadraticVertex fits y = c0 + c1·x + c2·x² through three points and
// returns the parabola's vertex
func quadraticVertex(xs, ys []float64) (x, y float64, err error) {
	v := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		v.Set(i, 0, 1)
		v.Set(i, 1, xs[i])
		v.Set(i, 2, xs[i]*xs[i])
	}

	var qr mat.QR
	qr.Factorize(v)

	coeffs := mat.NewVecDense(3, nil)
	if err := qr.SolveVecTo(coeffs, false, mat.NewVecDense(3, ys)); err != nil {
		return 0, 0, err
	}

	c1, c2 := coeffs.AtVec(1), coeffs.AtVec(2)
	if c2 <= 0 {
		return 0, 0, fmt.Errorf("analysis: bracket is not convex")
	}

	x = -c1 / (2 * c2)
	y = coeffs.AtVec(0) + c1*x + c2*x*x
	return x, y, nil
}

// WeightByDepth is one row of an optimal-weight-vs-depth sweep, with the
// optimal lead weight per lung state indexed by LungState
type WeightByDepth struct {
	Depth  float64    // m
	Weight [3]float64 // kg
}

// OptimalWeightCurve sweeps dive depths from depthStep to maxDepth and
// reports the energy-optimal lead weight for every lung state at each
func OptimalWeightCurve(p buoyancy.Parameters, maxDepth, depthStep, energyStep float64, weights []float64) ([]WeightByDepth, error) {
	if maxDepth <= 0 || depthStep <= 0 {
		return nil, fmt.Errorf("analysis: max depth and depth step must be positive")
	}

	var out []WeightByDepth
	for d := depthStep; d <= maxDepth+1e-9; d += depthStep {
		row := WeightByDepth{Depth: d}
		for _, state := range buoyancy.LungStates {
			res, err := OptimalWeight(p, d, state, energyStep, weights)
			if err != nil {
				return nil, err
			}
			row.Weight[state] = res.Weight
		}
		out = append(out, row)
	}
	return out, nil
}
