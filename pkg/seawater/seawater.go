// Package seawater estimates water density from salinity and temperature
// using a linear approximation valid for the temperature and salinity
// ranges encountered in recreational freediving. Density is expressed in
// kg/L so it can multiply volumes in liters to give displaced mass in kg.
package seawater

import "fmt"

// WaterType selects the salinity model for a body of water
type WaterType string

const (
	Sea   WaterType = "sea"
	Fresh WaterType = "fresh"
)

// Typical salinities in parts per thousand
const (
	SeaSalinity   = 35.0
	FreshSalinity = 0.0
)

// ParseWaterType converts a configuration string to a WaterType
func ParseWaterType(s string) (WaterType, error) {
	switch WaterType(s) {
	case Sea:
		return Sea, nil
	case Fresh:
		return Fresh, nil
	}
	return "", fmt.Errorf("unknown water type %q (want %q or %q)", s, Sea, Fresh)
}

// Salinity returns the typical salinity (ppt) for a water type
func Salinity(w WaterType) float64 {
	if w == Sea {
		return SeaSalinity
	}
	return FreshSalinity
}

// Density returns water density in kg/L for the given water type and
// temperature in °C: ρ = 1.000 + 0.0008·S − 0.0003·T
func Density(w WaterType, temperatureC float64) float64 {
	return 1.000 + 0.0008*Salinity(w) - 0.0003*temperatureC
}

// DensityKgM3 returns the same density scaled to kg/m³
func DensityKgM3(w WaterType, temperatureC float64) float64 {
	return Density(w, temperatureC) * 1000
}
