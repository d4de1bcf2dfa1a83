package restserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chrissnell/ballast/pkg/analysis"
	"github.com/chrissnell/ballast/pkg/buoyancy"
)

// curveResponse is the depth-vs-force series consumed by the plotting
// front end
type curveResponse struct {
	WaterDensity float64       `json:"water_density"` // kg/L
	Samples      []curveSample `json:"samples"`
}

type curveSample struct {
	Depth  float64 `json:"depth"`
	Full   float64 `json:"full"`
	Medium float64 `json:"medium"`
	Empty  float64 `json:"empty"`
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paramsFromQuery(w, r)
	if !ok {
		return
	}
	maxDepth := s.floatParam(r, "max_depth", s.cfg.Analysis.MaxDepth)
	samples := int(s.floatParam(r, "samples", float64(s.cfg.Analysis.Samples)))

	curve := buoyancy.Curve(p, maxDepth, samples)
	resp := curveResponse{
		WaterDensity: p.WaterDensity(),
		Samples:      make([]curveSample, len(curve)),
	}
	for i, c := range curve {
		resp.Samples[i] = curveSample{
			Depth:  c.Depth,
			Full:   c.Force[buoyancy.LungFull],
			Medium: c.Force[buoyancy.LungMedium],
			Empty:  c.Force[buoyancy.LungEmpty],
		}
	}
	s.formatter.Write(w, r, http.StatusOK, resp)
}

func (s *Server) handleFreefall(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paramsFromQuery(w, r)
	if !ok {
		return
	}
	state, ok := s.stateFromQuery(w, r)
	if !ok {
		return
	}
	maxDepth := s.floatParam(r, "max_depth", s.cfg.Analysis.MaxDepth)
	resolution := s.floatParam(r, "resolution", s.cfg.Analysis.Resolution)

	depth, err := analysis.FreefallDepth(p, state, maxDepth, resolution)
	if err != nil {
		var nt *analysis.NoTransitionError
		if errors.As(err, &nt) {
			// No sign change is a result, not a failure; report which way
			mode := "always_floats"
			if errors.Is(err, analysis.ErrAlwaysSinks) {
				mode = "always_sinks"
			}
			s.formatter.Write(w, r, http.StatusOK, map[string]any{
				"lung_state": state.String(),
				"transition": nil,
				"mode":       mode,
			})
			return
		}
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.formatter.Write(w, r, http.StatusOK, map[string]any{
		"lung_state": state.String(),
		"transition": depth,
	})
}

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paramsFromQuery(w, r)
	if !ok {
		return
	}
	state, ok := s.stateFromQuery(w, r)
	if !ok {
		return
	}
	target := s.floatParam(r, "target", s.cfg.Analysis.TargetDepth)
	tolerance := s.floatParam(r, "tolerance", s.cfg.Analysis.Tolerance)

	weight, err := analysis.SolveLeadWeight(p, target, state, tolerance)
	switch {
	case errors.Is(err, analysis.ErrInvalidTarget):
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, analysis.ErrInfeasibleWeight):
		s.formatter.Write(w, r, http.StatusOK, map[string]any{
			"lung_state":   state.String(),
			"target_depth": target,
			"feasible":     false,
			"reason":       err.Error(),
		})
		return
	case err != nil:
		s.formatter.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.formatter.Write(w, r, http.StatusOK, map[string]any{
		"lung_state":   state.String(),
		"target_depth": target,
		"feasible":     true,
		"lead_weight":  weight,
	})
}

func (s *Server) handleEnergy(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paramsFromQuery(w, r)
	if !ok {
		return
	}
	state, ok := s.stateFromQuery(w, r)
	if !ok {
		return
	}
	depth := s.floatParam(r, "depth", s.cfg.Analysis.TargetDepth)

	wh, err := analysis.EnergyUse(p, depth, state, s.cfg.Analysis.EnergyStep)
	if err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.formatter.Write(w, r, http.StatusOK, map[string]any{
		"lung_state": state.String(),
		"depth":      depth,
		"energy_wh":  wh,
	})
}

func (s *Server) handleOptimalWeight(w http.ResponseWriter, r *http.Request) {
	p, ok := s.paramsFromQuery(w, r)
	if !ok {
		return
	}
	state, ok := s.stateFromQuery(w, r)
	if !ok {
		return
	}
	depth := s.floatParam(r, "depth", s.cfg.Analysis.TargetDepth)

	res, err := analysis.OptimalWeight(p, depth, state, s.cfg.Analysis.EnergyStep, analysis.DefaultWeights())
	if err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.formatter.Write(w, r, http.StatusOK, map[string]any{
		"lung_state":     state.String(),
		"depth":          depth,
		"optimal_weight": res.Weight,
		"energy_wh":      res.Energy,
	})
}

// paramsFromQuery starts from the configured profile and applies any
// per-request overrides. Overridden parameters are re-validated so a bad
// query cannot reach the physics.
func (s *Server) paramsFromQuery(w http.ResponseWriter, r *http.Request) (buoyancy.Parameters, bool) {
	p := s.cfg.Params
	p.LeadWeight = s.floatParam(r, "lead", p.LeadWeight)
	p.TemperatureC = s.floatParam(r, "temperature", p.TemperatureC)

	if err := p.Validate(); err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return buoyancy.Parameters{}, false
	}
	return p, true
}

func (s *Server) stateFromQuery(w http.ResponseWriter, r *http.Request) (buoyancy.LungState, bool) {
	raw := r.URL.Query().Get("state")
	if raw == "" {
		return buoyancy.LungFull, true
	}
	state, err := buoyancy.ParseLungState(raw)
	if err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return state, true
}

func (s *Server) floatParam(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
