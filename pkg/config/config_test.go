package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrissnell/ballast/pkg/buoyancy"
	"github.com/chrissnell/ballast/pkg/seawater"
)

const validProfile = `
diver:
  mass: 75
  body_fat_fraction: 0.15
lungs:
  full: 6
  medium: 4
  empty: 3
  residual: 1.5
wetsuit:
  mass: 3
  density: 0.3
  compressibility: 0.01
lead_weight: 2
gear_volume: 0.5
water_type: sea
temperature: 20
analysis:
  max_depth: 60
  target_depth: 25
server:
  listen_addr: ":9999"
`

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeProfile(t, validProfile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Params.DiverMass != 75 {
		t.Errorf("diver mass = %.1f, expected 75", cfg.Params.DiverMass)
	}
	if cfg.Params.Water != seawater.Sea {
		t.Errorf("water type = %q, expected sea", cfg.Params.Water)
	}
	if cfg.Params.Lungs.Medium != 4 {
		t.Errorf("medium lung = %.1f, expected 4", cfg.Params.Lungs.Medium)
	}
	if cfg.Params.CompressibleLean {
		t.Error("compressible_lean should default to off")
	}

	// Explicit values kept, omitted ones defaulted
	if cfg.Analysis.MaxDepth != 60 {
		t.Errorf("max depth = %.1f, expected 60", cfg.Analysis.MaxDepth)
	}
	if cfg.Analysis.TargetDepth != 25 {
		t.Errorf("target depth = %.1f, expected 25", cfg.Analysis.TargetDepth)
	}
	if cfg.Analysis.Resolution != DefaultResolution {
		t.Errorf("resolution = %v, expected default %v", cfg.Analysis.Resolution, DefaultResolution)
	}
	if cfg.Analysis.Samples != DefaultSamples {
		t.Errorf("samples = %d, expected default %d", cfg.Analysis.Samples, DefaultSamples)
	}
	if cfg.Server.ListenAddr != ":9999" {
		t.Errorf("listen addr = %q, expected :9999", cfg.Server.ListenAddr)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := Load(writeProfile(t, "diver: [")); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})

	t.Run("unknown water type", func(t *testing.T) {
		bad := strings.ReplaceAll(validProfile, "water_type: sea", "water_type: brackish")
		if _, err := Load(writeProfile(t, bad)); err == nil {
			t.Error("expected error for unknown water type")
		}
	})

	t.Run("invalid parameter surfaces as ParameterError", func(t *testing.T) {
		bad := strings.ReplaceAll(validProfile, "body_fat_fraction: 0.15", "body_fat_fraction: 1.5")
		_, err := Load(writeProfile(t, bad))
		var perr *buoyancy.ParameterError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *buoyancy.ParameterError, got %v", err)
		}
		if perr.Field != "body_fat_fraction" {
			t.Errorf("error field = %q, expected body_fat_fraction", perr.Field)
		}
	})

	t.Run("percent-style compressibility rejected against max depth", func(t *testing.T) {
		bad := strings.ReplaceAll(validProfile, "compressibility: 0.01", "compressibility: 1.6")
		if _, err := Load(writeProfile(t, bad)); err == nil {
			t.Error("expected rejection of compressibility that goes negative before max depth")
		}
	})
}
