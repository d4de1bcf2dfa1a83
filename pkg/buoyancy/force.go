package buoyancy

// NetForce returns the net buoyant force in kgf on the diver at the given
// depth and lung state: displaced water mass minus total carried mass.
// Positive means the diver floats, negative means the diver sinks.
func NetForce(p Parameters, depth float64, state LungState) float64 {
	return p.WaterDensity()*DisplacedVolume(p, depth, state) - p.TotalMass()
}

// Newtons converts a force in kgf to newtons
func Newtons(kgf float64) float64 {
	return kgf * Gravity
}
