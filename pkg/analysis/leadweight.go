package analysis

import (
	"fmt"
	"math"

	"github.com/chrissnell/ballast/pkg/buoyancy"
)

// SolveLeadWeight returns the lead mass in kg that makes the net force
// zero at targetDepth for the given lung state. Net force is affine in
// lead weight (more lead removes displacement and adds carried mass, both
// monotonically), so the solution is unique and computed in closed form:
//
//	ρ·(V₀(d) − w/ρ_lead) − (m_diver + m_suit + w) = 0
//	w = (ρ·V₀(d) − m_diver − m_suit) / (1 + ρ/ρ_lead)
//
// where V₀ is the displaced volume with no lead. The input parameters are
// never mutated; the caller can seed a new set with WithLeadWeight.
//
// A negative targetDepth returns ErrInvalidTarget. A negative solution
// returns ErrInfeasibleWeight: the diver already sinks at that depth and
// lead cannot be removed below zero. When tolerance is positive the
// residual force at the solution is checked against it.
func SolveLeadWeight(p buoyancy.Parameters, targetDepth float64, state buoyancy.LungState, tolerance float64) (float64, error) {
	if targetDepth < 0 {
		return 0, ErrInvalidTarget
	}

	rho := p.WaterDensity()
	unleaded := p.WithLeadWeight(0)
	volume := buoyancy.DisplacedVolume(unleaded, targetDepth, state)

	weight := (rho*volume - p.DiverMass - p.WetsuitMass) / (1 + rho/buoyancy.LeadDensity)
	if weight < 0 {
		return 0, ErrInfeasibleWeight
	}

	if tolerance > 0 {
		residual := buoyancy.NetForce(p.WithLeadWeight(weight), targetDepth, state)
		if math.Abs(residual) > tolerance {
			return 0, fmt.Errorf("analysis: solve residual %.3g kgf exceeds tolerance %.3g", residual, tolerance)
		}
	}

	return weight, nil
}
