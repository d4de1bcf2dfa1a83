// Package config loads dive profile configuration from YAML files and
// converts it into a validated buoyancy.Parameters value plus analysis
// and server settings.
package config

import (
	"fmt"
	"os"

	"github.com/chrissnell/ballast/pkg/buoyancy"
	"github.com/chrissnell/ballast/pkg/seawater"
	"gopkg.in/yaml.v2"
)

// Analysis defaults applied when the profile omits them
const (
	DefaultMaxDepth    = 50.0  // m
	DefaultResolution  = 0.1   // m between freefall scan samples
	DefaultTolerance   = 0.001 // kgf
	DefaultSamples     = 500   // points in a force curve
	DefaultEnergyStep  = 0.1   // m between energy integration samples
	DefaultListenAddr  = ":8090"
	DefaultTargetDepth = 10.0 // m
)

// Config is the fully resolved configuration: a validated parameter set
// plus analysis and server settings
type Config struct {
	Params   buoyancy.Parameters
	Analysis AnalysisConfig
	Server   ServerConfig
}

// AnalysisConfig holds depth-range and solver settings shared by the CLI
// and the HTTP server
type AnalysisConfig struct {
	MaxDepth    float64 // m, scan and curve limit
	Resolution  float64 // m, freefall scan resolution
	TargetDepth float64 // m, default neutral-buoyancy target
	Tolerance   float64 // kgf, solver residual tolerance
	Samples     int     // points per force curve
	EnergyStep  float64 // m, energy integration step
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	ListenAddr string
}

// profileYAML mirrors the on-disk YAML layout
type profileYAML struct {
	Diver struct {
		Mass            float64 `yaml:"mass"`
		BodyFatFraction float64 `yaml:"body_fat_fraction"`
	} `yaml:"diver"`
	Lungs struct {
		Full     float64 `yaml:"full"`
		Medium   float64 `yaml:"medium"`
		Empty    float64 `yaml:"empty"`
		Residual float64 `yaml:"residual"`
	} `yaml:"lungs"`
	Wetsuit struct {
		Mass            float64 `yaml:"mass"`
		Density         float64 `yaml:"density"`
		Compressibility float64 `yaml:"compressibility"`
	} `yaml:"wetsuit"`
	LeadWeight       float64 `yaml:"lead_weight"`
	GearVolume       float64 `yaml:"gear_volume"`
	Water            string  `yaml:"water_type"`
	TemperatureC     float64 `yaml:"temperature"`
	CompressibleLean bool    `yaml:"compressible_lean,omitempty"`
	Analysis         struct {
		MaxDepth    float64 `yaml:"max_depth,omitempty"`
		Resolution  float64 `yaml:"resolution,omitempty"`
		TargetDepth float64 `yaml:"target_depth,omitempty"`
		Tolerance   float64 `yaml:"tolerance,omitempty"`
		Samples     int     `yaml:"samples,omitempty"`
		EnergyStep  float64 `yaml:"energy_step,omitempty"`
	} `yaml:"analysis,omitempty"`
	Server struct {
		ListenAddr string `yaml:"listen_addr,omitempty"`
	} `yaml:"server,omitempty"`
}

// Load reads and validates a dive profile from a YAML file
func Load(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var y profileYAML
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	water, err := seawater.ParseWaterType(y.Water)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Params: buoyancy.Parameters{
			DiverMass:       y.Diver.Mass,
			BodyFatFraction: y.Diver.BodyFatFraction,
			Lungs: buoyancy.LungVolumes{
				Full:   y.Lungs.Full,
				Medium: y.Lungs.Medium,
				Empty:  y.Lungs.Empty,
			},
			ResidualVolume:         y.Lungs.Residual,
			WetsuitMass:            y.Wetsuit.Mass,
			WetsuitDensity:         y.Wetsuit.Density,
			WetsuitCompressibility: y.Wetsuit.Compressibility,
			LeadWeight:             y.LeadWeight,
			GearVolume:             y.GearVolume,
			Water:                  water,
			TemperatureC:           y.TemperatureC,
			CompressibleLean:       y.CompressibleLean,
		},
		Analysis: AnalysisConfig{
			MaxDepth:    y.Analysis.MaxDepth,
			Resolution:  y.Analysis.Resolution,
			TargetDepth: y.Analysis.TargetDepth,
			Tolerance:   y.Analysis.Tolerance,
			Samples:     y.Analysis.Samples,
			EnergyStep:  y.Analysis.EnergyStep,
		},
		Server: ServerConfig{ListenAddr: y.Server.ListenAddr},
	}
	cfg.applyDefaults()

	if err := cfg.Params.ValidateForDepth(cfg.Analysis.MaxDepth); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Analysis.MaxDepth == 0 {
		c.Analysis.MaxDepth = DefaultMaxDepth
	}
	if c.Analysis.Resolution == 0 {
		c.Analysis.Resolution = DefaultResolution
	}
	if c.Analysis.TargetDepth == 0 {
		c.Analysis.TargetDepth = DefaultTargetDepth
	}
	if c.Analysis.Tolerance == 0 {
		c.Analysis.Tolerance = DefaultTolerance
	}
	if c.Analysis.Samples == 0 {
		c.Analysis.Samples = DefaultSamples
	}
	if c.Analysis.EnergyStep == 0 {
		c.Analysis.EnergyStep = DefaultEnergyStep
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
}
