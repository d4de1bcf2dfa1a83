// ballast-calc runs the buoyancy analyses offline and prints the results
// as tables, with an optional CSV export of the force curve for plotting.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/ballast/pkg/analysis"
	"github.com/chrissnell/ballast/pkg/buoyancy"
	"github.com/chrissnell/ballast/pkg/config"
)

func main() {
	var (
		cfgFile   = flag.String("config", "profile.yaml", "Path to dive profile file")
		target    = flag.Float64("target", 0, "Neutral-buoyancy target depth in m (0 = profile default)")
		maxDepth  = flag.Float64("max-depth", 0, "Scan/curve depth limit in m (0 = profile default)")
		lead      = flag.Float64("lead", -1, "Override lead weight in kg (-1 = profile value)")
		csvOutput = flag.String("csv", "", "Optional CSV output file path for the force curve")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	p := cfg.Params
	if *lead >= 0 {
		p = p.WithLeadWeight(*lead)
	}
	if *target > 0 {
		cfg.Analysis.TargetDepth = *target
	}
	if *maxDepth > 0 {
		cfg.Analysis.MaxDepth = *maxDepth
	}

	fmt.Printf("Freediver Buoyancy Analysis\n")
	fmt.Printf("===========================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Diver: %.1f kg, %.0f%% body fat\n", p.DiverMass, p.BodyFatFraction*100)
	fmt.Printf("  Lungs: %.1f/%.1f/%.1f L (residual %.1f L)\n",
		p.Lungs.Full, p.Lungs.Medium, p.Lungs.Empty, p.ResidualVolume)
	fmt.Printf("  Wetsuit: %.2f kg at %.2f kg/L, compressibility %.3f/m\n",
		p.WetsuitMass, p.WetsuitDensity, p.WetsuitCompressibility)
	fmt.Printf("  Lead: %.2f kg, gear %.2f L\n", p.LeadWeight, p.GearVolume)
	fmt.Printf("  Water: %s at %.1f °C (density %.4f kg/L)\n\n",
		p.Water, p.TemperatureC, p.WaterDensity())

	printForceTable(p, cfg.Analysis.MaxDepth)
	printFreefall(p, cfg.Analysis)
	printLeadSolve(p, cfg.Analysis)
	printEnergy(p, cfg.Analysis)

	if *csvOutput != "" {
		if err := exportCSV(*csvOutput, p, cfg.Analysis); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nForce curve exported to: %s\n", *csvOutput)
	}
}

func printForceTable(p buoyancy.Parameters, maxDepth float64) {
	fmt.Printf("Net Force vs Depth (kgf)\n")
	fmt.Printf("------------------------\n")
	fmt.Printf("%8s | %8s | %8s | %8s\n", "Depth(m)", "Full", "Medium", "Empty")

	steps := 11
	curve := buoyancy.Curve(p, maxDepth, steps)
	for _, s := range curve {
		fmt.Printf("%8.1f | %+8.2f | %+8.2f | %+8.2f\n",
			s.Depth, s.Force[buoyancy.LungFull], s.Force[buoyancy.LungMedium], s.Force[buoyancy.LungEmpty])
	}
	fmt.Println()
}

func printFreefall(p buoyancy.Parameters, ac config.AnalysisConfig) {
	fmt.Printf("Freefall Transition\n")
	fmt.Printf("-------------------\n")
	for _, state := range buoyancy.LungStates {
		depth, err := analysis.FreefallDepth(p, state, ac.MaxDepth, ac.Resolution)
		switch {
		case errors.Is(err, analysis.ErrAlwaysFloats):
			fmt.Printf("  %-6s: no freefall above %.0f m (always floats)\n", state, ac.MaxDepth)
		case errors.Is(err, analysis.ErrAlwaysSinks):
			fmt.Printf("  %-6s: sinks from the surface\n", state)
		case err != nil:
			fmt.Printf("  %-6s: %v\n", state, err)
		default:
			fmt.Printf("  %-6s: freefall begins at %.1f m\n", state, depth)
		}
	}
	fmt.Println()
}

func printLeadSolve(p buoyancy.Parameters, ac config.AnalysisConfig) {
	fmt.Printf("Neutral Buoyancy at %.1f m\n", ac.TargetDepth)
	fmt.Printf("--------------------------\n")
	for _, state := range buoyancy.LungStates {
		weight, err := analysis.SolveLeadWeight(p, ac.TargetDepth, state, ac.Tolerance)
		switch {
		case errors.Is(err, analysis.ErrInfeasibleWeight):
			fmt.Printf("  %-6s: infeasible (already negative with no lead)\n", state)
		case err != nil:
			fmt.Printf("  %-6s: %v\n", state, err)
		default:
			fmt.Printf("  %-6s: %.2f kg lead\n", state, weight)
		}
	}
	fmt.Println()
}

func printEnergy(p buoyancy.Parameters, ac config.AnalysisConfig) {
	fmt.Printf("Round-Trip Energy to %.1f m\n", ac.TargetDepth)
	fmt.Printf("---------------------------\n")
	for _, state := range buoyancy.LungStates {
		wh, err := analysis.EnergyUse(p, ac.TargetDepth, state, ac.EnergyStep)
		if err != nil {
			fmt.Printf("  %-6s: %v\n", state, err)
			continue
		}
		opt, err := analysis.OptimalWeight(p, ac.TargetDepth, state, ac.EnergyStep, analysis.DefaultWeights())
		if err != nil {
			fmt.Printf("  %-6s: %.2f Wh\n", state, wh)
			continue
		}
		fmt.Printf("  %-6s: %.2f Wh (optimal lead %.1f kg -> %.2f Wh)\n", state, wh, opt.Weight, opt.Energy)
	}
	fmt.Println()
}

func exportCSV(filename string, p buoyancy.Parameters, ac config.AnalysisConfig) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Depth_m", "Full_kgf", "Medium_kgf", "Empty_kgf"}); err != nil {
		return err
	}

	for _, s := range buoyancy.Curve(p, ac.MaxDepth, ac.Samples) {
		record := []string{
			fmt.Sprintf("%.2f", s.Depth),
			fmt.Sprintf("%.4f", s.Force[buoyancy.LungFull]),
			fmt.Sprintf("%.4f", s.Force[buoyancy.LungMedium]),
			fmt.Sprintf("%.4f", s.Force[buoyancy.LungEmpty]),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
