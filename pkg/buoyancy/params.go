// Package buoyancy models the net buoyant force on a freediver as a
// function of depth. The model accounts for body composition, lung
// compression following Boyle's law, wetsuit compression, gear volume,
// and lead ballast. All volumes are carried in liters and densities in
// kg/L, so displaced mass in kg falls out directly and net force is
// reported in kgf (positive = floats, negative = sinks).
package buoyancy

import (
	"fmt"

	"github.com/chrissnell/ballast/pkg/seawater"
)

// Tissue and ballast densities in kg/L
const (
	FatDensity  = 0.9
	LeanDensity = 1.1
	LeadDensity = 11.34
)

// leanCompressibility is the per-meter volumetric compression applied to
// lean tissue when Parameters.CompressibleLean is enabled
const leanCompressibility = 0.0004

// Gravity is standard gravity in m/s², used only when converting kgf to
// newtons. The model itself works in kgf and never mixes the two.
const Gravity = 9.81

// LungState identifies the breath-hold fill level at the surface
type LungState int

const (
	LungFull LungState = iota
	LungMedium
	LungEmpty
)

// LungStates lists all states in display order, usable as array indices
var LungStates = [3]LungState{LungFull, LungMedium, LungEmpty}

func (s LungState) String() string {
	switch s {
	case LungFull:
		return "full"
	case LungMedium:
		return "medium"
	case LungEmpty:
		return "empty"
	}
	return fmt.Sprintf("LungState(%d)", int(s))
}

// ParseLungState converts a configuration or query string to a LungState
func ParseLungState(s string) (LungState, error) {
	switch s {
	case "full":
		return LungFull, nil
	case "medium":
		return LungMedium, nil
	case "empty":
		return LungEmpty, nil
	}
	return 0, fmt.Errorf("unknown lung state %q (want full, medium, or empty)", s)
}

// LungVolumes holds the three surface lung volumes in liters
type LungVolumes struct {
	Full   float64
	Medium float64
	Empty  float64
}

// Parameters is the immutable diver/equipment/water configuration. It is
// constructed once, validated with Validate, and passed by value to every
// model function; nothing in this package mutates it.
type Parameters struct {
	DiverMass       float64 // kg, diver plus anything not listed below
	BodyFatFraction float64 // fraction of DiverMass that is fat, [0,1]

	Lungs          LungVolumes // L at the surface, per lung state
	ResidualVolume float64     // L, incompressible minimum lung volume

	WetsuitMass            float64 // kg
	WetsuitDensity         float64 // kg/L (numerically equal to g/cm³)
	WetsuitCompressibility float64 // fraction of surface volume lost per meter of depth

	LeadWeight float64 // kg
	GearVolume float64 // L, snorkel and mask, depth-invariant

	Water        seawater.WaterType
	TemperatureC float64

	// CompressibleLean applies a mild depth compression to lean tissue.
	// Off by default; both behaviors are physically defensible, so the
	// choice is left to the caller rather than baked in.
	CompressibleLean bool
}

// ParameterError reports a Parameters field that violates its invariant.
// Validation happens at construction time so the physics functions can
// stay total.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Validate checks every field invariant and returns a *ParameterError for
// the first violation found
func (p Parameters) Validate() error {
	if p.DiverMass <= 0 {
		return &ParameterError{"diver_mass", "must be positive"}
	}
	if p.BodyFatFraction < 0 || p.BodyFatFraction > 1 {
		return &ParameterError{"body_fat_fraction", "must be within [0,1]"}
	}
	if p.ResidualVolume < 0 {
		return &ParameterError{"residual_volume", "must be non-negative"}
	}
	for _, s := range LungStates {
		if p.LungVolume(s) < p.ResidualVolume {
			return &ParameterError{s.String() + "_lung",
				"surface lung volume must be at least the residual volume"}
		}
	}
	if p.WetsuitMass < 0 {
		return &ParameterError{"wetsuit_mass", "must be non-negative"}
	}
	if p.WetsuitDensity <= 0 {
		return &ParameterError{"wetsuit_density", "must be positive"}
	}
	if p.WetsuitCompressibility < 0 {
		return &ParameterError{"wetsuit_compressibility", "must be non-negative"}
	}
	if p.LeadWeight < 0 {
		return &ParameterError{"lead_weight", "must be non-negative"}
	}
	if p.GearVolume < 0 {
		return &ParameterError{"gear_volume", "must be non-negative"}
	}
	if _, err := seawater.ParseWaterType(string(p.Water)); err != nil {
		return &ParameterError{"water_type", err.Error()}
	}
	return nil
}

// ValidateForDepth runs Validate and additionally rejects a wetsuit
// compressibility that would drive the wetsuit volume negative anywhere
// inside the working depth range. The volume model clamps that term to
// zero regardless, but a configuration that relies on the clamp is almost
// always a unit mistake (percent vs fraction), so it is refused up front.
func (p Parameters) ValidateForDepth(maxDepth float64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if maxDepth < 0 {
		return &ParameterError{"max_depth", "must be non-negative"}
	}
	if p.WetsuitMass > 0 && p.WetsuitCompressibility*maxDepth > 1 {
		return &ParameterError{"wetsuit_compressibility",
			fmt.Sprintf("wetsuit volume goes negative at %.1f m, before max depth %.1f m",
				1/p.WetsuitCompressibility, maxDepth)}
	}
	return nil
}

// LungVolume returns the surface lung volume in liters for a state
func (p Parameters) LungVolume(state LungState) float64 {
	switch state {
	case LungMedium:
		return p.Lungs.Medium
	case LungEmpty:
		return p.Lungs.Empty
	default:
		return p.Lungs.Full
	}
}

// TotalMass returns diver + wetsuit + lead in kg
func (p Parameters) TotalMass() float64 {
	return p.DiverMass + p.WetsuitMass + p.LeadWeight
}

// WaterDensity returns the ambient water density in kg/L
func (p Parameters) WaterDensity() float64 {
	return seawater.Density(p.Water, p.TemperatureC)
}

// WithLeadWeight returns a copy of p carrying a different lead weight.
// The receiver is left untouched.
func (p Parameters) WithLeadWeight(kg float64) Parameters {
	p.LeadWeight = kg
	return p
}
