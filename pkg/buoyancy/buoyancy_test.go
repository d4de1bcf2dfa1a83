package buoyancy

import (
	"math"
	"testing"

	"github.com/chrissnell/ballast/pkg/seawater"
)

// referenceParams is the hand-checked fixture: 75 kg diver at 15% body
// fat, 6/4/3 L lungs with 1.5 L residual, 3 kg wetsuit at 0.3 kg/L with
// 1%/m compression, 2 kg lead, 0.5 L of gear, sea water at 20 °C.
func referenceParams() Parameters {
	return Parameters{
		DiverMass:              75,
		BodyFatFraction:        0.15,
		Lungs:                  LungVolumes{Full: 6, Medium: 4, Empty: 3},
		ResidualVolume:         1.5,
		WetsuitMass:            3,
		WetsuitDensity:         0.3,
		WetsuitCompressibility: 0.01,
		LeadWeight:             2,
		GearVolume:             0.5,
		Water:                  seawater.Sea,
		TemperatureC:           20,
	}
}

func TestReferenceSurfaceForce(t *testing.T) {
	p := referenceParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("reference fixture failed validation: %v", err)
	}

	// By hand: ρ = 1.022 kg/L; V = 12.5 (fat) + 57.9545 (lean) + 6 (lungs)
	// + 10 (wetsuit) + 0.5 (gear) − 0.17637 (lead) = 86.7782 L;
	// F = 1.022·86.7782 − 80 = 8.6873 kgf.
	got := NetForce(p, 0, LungFull)
	if math.Abs(got-8.6873) > 0.01 {
		t.Errorf("surface net force = %.4f kgf, expected 8.6873 ± 0.01", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		field  string
	}{
		{"zero mass", func(p *Parameters) { p.DiverMass = 0 }, "diver_mass"},
		{"negative mass", func(p *Parameters) { p.DiverMass = -70 }, "diver_mass"},
		{"fat fraction above 1", func(p *Parameters) { p.BodyFatFraction = 1.2 }, "body_fat_fraction"},
		{"negative fat fraction", func(p *Parameters) { p.BodyFatFraction = -0.1 }, "body_fat_fraction"},
		{"negative residual", func(p *Parameters) { p.ResidualVolume = -1 }, "residual_volume"},
		{"empty lung below residual", func(p *Parameters) { p.Lungs.Empty = 1.0 }, "empty_lung"},
		{"full lung below residual", func(p *Parameters) { p.Lungs = LungVolumes{Full: 1, Medium: 1, Empty: 1} }, "full_lung"},
		{"negative wetsuit mass", func(p *Parameters) { p.WetsuitMass = -1 }, "wetsuit_mass"},
		{"zero wetsuit density", func(p *Parameters) { p.WetsuitDensity = 0 }, "wetsuit_density"},
		{"negative compressibility", func(p *Parameters) { p.WetsuitCompressibility = -0.01 }, "wetsuit_compressibility"},
		{"negative lead", func(p *Parameters) { p.LeadWeight = -2 }, "lead_weight"},
		{"negative gear volume", func(p *Parameters) { p.GearVolume = -0.5 }, "gear_volume"},
		{"bad water type", func(p *Parameters) { p.Water = "brackish" }, "water_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referenceParams()
			tt.mutate(&p)

			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			perr, ok := err.(*ParameterError)
			if !ok {
				t.Fatalf("expected *ParameterError, got %T", err)
			}
			if perr.Field != tt.field {
				t.Errorf("error field = %q, expected %q", perr.Field, tt.field)
			}
		})
	}

	t.Run("valid fixture passes", func(t *testing.T) {
		p := referenceParams()
		if err := p.Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	})
}

func TestValidateForDepth(t *testing.T) {
	t.Run("percent-style compressibility is rejected", func(t *testing.T) {
		p := referenceParams()
		p.WetsuitCompressibility = 1.6 // per-meter fraction given as a percent
		if err := p.ValidateForDepth(50); err == nil {
			t.Error("expected rejection of compressibility that goes negative in range")
		}
	})

	t.Run("clamp depth beyond range is fine", func(t *testing.T) {
		p := referenceParams() // wetsuit fully compressed at 100 m
		if err := p.ValidateForDepth(50); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no wetsuit means no compressibility limit", func(t *testing.T) {
		p := referenceParams()
		p.WetsuitMass = 0
		p.WetsuitCompressibility = 1.6
		if err := p.ValidateForDepth(50); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestLungVolumeBoundaries(t *testing.T) {
	p := referenceParams()

	// At the surface the lung term is exactly the selected state's volume,
	// so the full/empty displacement gap equals the surface volume gap.
	gap := DisplacedVolume(p, 0, LungFull) - DisplacedVolume(p, 0, LungEmpty)
	if math.Abs(gap-(p.Lungs.Full-p.Lungs.Empty)) > 1e-12 {
		t.Errorf("surface lung gap = %.9f L, expected %.9f L", gap, p.Lungs.Full-p.Lungs.Empty)
	}

	// At extreme depth every state collapses to the residual volume.
	deep := 1e9
	gap = DisplacedVolume(p, deep, LungFull) - DisplacedVolume(p, deep, LungEmpty)
	if math.Abs(gap) > 1e-6 {
		t.Errorf("deep lung gap = %.9f L, expected ~0 (all states at residual)", gap)
	}
}

func TestDisplacedVolumeNonNegativeAndContinuous(t *testing.T) {
	p := referenceParams()
	p.LeadWeight = 10 // make the subtracted term as large as is realistic

	const step = 0.25
	prev := DisplacedVolume(p, 0, LungEmpty)
	for d := step; d <= 200; d += step {
		v := DisplacedVolume(p, d, LungEmpty)
		if v < 0 {
			t.Fatalf("displaced volume %.4f L < 0 at %.2f m", v, d)
		}
		// The wetsuit clamp at 100 m must not introduce a jump
		if math.Abs(v-prev) > 1.0 {
			t.Fatalf("displaced volume jumped %.4f L between %.2f and %.2f m", v-prev, d-step, d)
		}
		prev = v
	}
}

func TestWetsuitClamp(t *testing.T) {
	p := referenceParams()
	// Fully compressed at 100 m with k=0.01. Beyond that the wetsuit
	// contributes nothing, so volume differs between depths only via the
	// lung term.
	v150 := DisplacedVolume(p, 150, LungFull)
	v200 := DisplacedVolume(p, 200, LungFull)
	lung150 := p.ResidualVolume + (p.Lungs.Full-p.ResidualVolume)/(1+150.0/10)
	lung200 := p.ResidualVolume + (p.Lungs.Full-p.ResidualVolume)/(1+200.0/10)
	if math.Abs((v150-v200)-(lung150-lung200)) > 1e-12 {
		t.Errorf("volume change past full wetsuit compression = %.9f L, expected lung-only change %.9f L",
			v150-v200, lung150-lung200)
	}
}

func TestNetForceMonotonicInLeadWeight(t *testing.T) {
	p := referenceParams()
	for _, depth := range []float64{0, 5, 15, 40} {
		prev := math.Inf(1)
		for lead := 0.0; lead <= 10; lead += 0.5 {
			f := NetForce(p.WithLeadWeight(lead), depth, LungMedium)
			if f >= prev {
				t.Fatalf("net force not strictly decreasing in lead at %.0f m: %.6f -> %.6f at %.1f kg",
					depth, prev, f, lead)
			}
			prev = f
		}
	}
}

func TestCompressibleLeanToggle(t *testing.T) {
	p := referenceParams()
	rigid := DisplacedVolume(p, 40, LungFull)

	p.CompressibleLean = true
	soft := DisplacedVolume(p, 40, LungFull)

	if soft >= rigid {
		t.Errorf("compressible lean tissue should reduce displacement at depth: %.4f >= %.4f", soft, rigid)
	}

	// At the surface the toggle changes nothing
	p2 := referenceParams()
	surfRigid := DisplacedVolume(p2, 0, LungFull)
	p2.CompressibleLean = true
	surfSoft := DisplacedVolume(p2, 0, LungFull)
	if surfRigid != surfSoft {
		t.Errorf("lean compressibility altered surface volume: %.6f != %.6f", surfRigid, surfSoft)
	}
}

func TestNetForceIdempotent(t *testing.T) {
	p := referenceParams()
	a := NetForce(p, 17.3, LungMedium)
	b := NetForce(p, 17.3, LungMedium)
	if a != b {
		t.Errorf("repeated evaluation differs: %v != %v", a, b)
	}
}

func TestWithLeadWeightDoesNotMutate(t *testing.T) {
	p := referenceParams()
	q := p.WithLeadWeight(9)
	if p.LeadWeight != 2 {
		t.Errorf("original lead weight changed to %.1f", p.LeadWeight)
	}
	if q.LeadWeight != 9 {
		t.Errorf("copy lead weight = %.1f, expected 9", q.LeadWeight)
	}
}

func TestCurve(t *testing.T) {
	p := referenceParams()
	curve := Curve(p, 50, 101)

	if len(curve) != 101 {
		t.Fatalf("curve length = %d, expected 101", len(curve))
	}
	if curve[0].Depth != 0 {
		t.Errorf("first sample depth = %.4f, expected 0", curve[0].Depth)
	}
	if math.Abs(curve[100].Depth-50) > 1e-9 {
		t.Errorf("last sample depth = %.4f, expected 50", curve[100].Depth)
	}

	for _, state := range LungStates {
		if got := curve[0].Force[state]; got != NetForce(p, 0, state) {
			t.Errorf("curve surface force for %s = %.6f, expected %.6f", state, got, NetForce(p, 0, state))
		}
	}

	// Full lungs always displace at least as much as empty lungs
	for _, s := range curve {
		if s.Force[LungFull] < s.Force[LungEmpty] {
			t.Errorf("at %.1f m full-lung force %.4f < empty-lung force %.4f",
				s.Depth, s.Force[LungFull], s.Force[LungEmpty])
		}
	}
}

func TestParseLungState(t *testing.T) {
	for _, state := range LungStates {
		got, err := ParseLungState(state.String())
		if err != nil {
			t.Errorf("ParseLungState(%q): %v", state.String(), err)
		}
		if got != state {
			t.Errorf("ParseLungState(%q) = %v, expected %v", state.String(), got, state)
		}
	}
	if _, err := ParseLungState("half"); err == nil {
		t.Error("expected error for unknown lung state")
	}
}

func TestNewtons(t *testing.T) {
	if got := Newtons(1); math.Abs(got-9.81) > 1e-12 {
		t.Errorf("Newtons(1) = %v, expected 9.81", got)
	}
}

func BenchmarkNetForce(b *testing.B) {
	p := referenceParams()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NetForce(p, 25, LungMedium)
	}
}

func BenchmarkCurve(b *testing.B) {
	p := referenceParams()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Curve(p, 50, 500)
	}
}
