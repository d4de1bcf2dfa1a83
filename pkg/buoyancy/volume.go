package buoyancy

// DisplacedVolume returns the total water volume in liters displaced by
// the diver and their gear at the given depth (meters, ≥ 0) and lung
// state. Lead volume is subtracted from the displacement total: adding
// lead both removes displacement and adds weight, which is what makes
// net force strictly decreasing in lead mass.
func DisplacedVolume(p Parameters, depth float64, state LungState) float64 {
	fat := p.DiverMass * p.BodyFatFraction / FatDensity
	lean := p.DiverMass * (1 - p.BodyFatFraction) / LeanDensity
	if p.CompressibleLean {
		lean /= 1 + depth*leanCompressibility
	}

	// Boyle's law with one atmosphere added every 10 m. Reduces to the
	// surface volume at d=0 and to the residual volume as d → ∞.
	surface := p.LungVolume(state)
	lung := p.ResidualVolume + (surface-p.ResidualVolume)/(1+depth/10)

	suit := p.WetsuitMass / p.WetsuitDensity * (1 - p.WetsuitCompressibility*depth)
	if suit < 0 {
		suit = 0 // fully compressed
	}

	lead := p.LeadWeight / LeadDensity

	return fat + lean + lung + suit + p.GearVolume - lead
}
