package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/calc/flexure"
	"github.com/amidamarulas/Labterial/internal/calc/report"
	"github.com/amidamarulas/Labterial/internal/chart"
	"github.com/amidamarulas/Labterial/internal/units"
	"github.com/spf13/cobra"
)

var (
	flagName      string
	flagCategory  string
	flagModulus   float64
	flagYield     float64
	flagUltimate  float64
	flagPoisson   float64
	flagMode      string
	flagMaxStrain float64
	flagSamples   int
	flagImperial  bool
	flagOut       string

	flagSpanMM      float64
	flagWidthMM     float64
	flagThicknessMM float64
)

var rootCmd = &cobra.Command{
	Use:   "labterial",
	Short: "Virtual materials-testing toolbox",
	Long: `Simulate tension, compression and torsion tests for a material
defined by its elastic and strength properties, without the dashboard
or a database. Output goes to CSV or PNG.

Examples:
  # A36-like steel in tension, CSV to stdout
  labterial simulate --modulus 200000 --yield 250 --ultimate 400 --max-strain 0.15

  # Torsion curve of the same material as a plot
  labterial chart --modulus 200000 --yield 250 --mode torsion --max-strain 3 --out torsion.png

  # Three-point bend on a 200x20x10 mm bar
  labterial flexure --modulus 200000 --yield 250 --span 200 --width 20 --thickness 10`,
}

func materialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagName, "name", "", "Material name for labels")
	cmd.Flags().StringVar(&flagCategory, "category", "Metal", "Category (Metal, Polymer, Ceramic, Glass, Composite)")
	cmd.Flags().Float64VarP(&flagModulus, "modulus", "E", 0, "Elastic modulus (MPa) [required]")
	cmd.Flags().Float64VarP(&flagYield, "yield", "y", 0, "Yield strength (MPa) [required]")
	cmd.Flags().Float64VarP(&flagUltimate, "ultimate", "u", 0, "Ultimate strength (MPa), defaults to 1.1*yield")
	cmd.Flags().Float64Var(&flagPoisson, "poisson", 0.3, "Poisson ratio")
	cmd.Flags().Float64Var(&flagMaxStrain, "max-strain", 0.15, "Machine travel (strain, or rad for torsion)")
	cmd.Flags().IntVar(&flagSamples, "samples", curve.DefaultSampleCount, "Samples over the strain grid")
	cmd.Flags().BoolVar(&flagImperial, "imperial", false, "Report stresses in ksi")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default stdout)")
	cmd.MarkFlagRequired("modulus")
	cmd.MarkFlagRequired("yield")
}

func materialInput(cmd *cobra.Command, mode string) curve.Input {
	props := curve.Properties{
		Name:             flagName,
		Category:         flagCategory,
		ElasticModulus:   flagModulus,
		YieldStrength:    flagYield,
		UltimateStrength: flagUltimate,
	}
	if cmd.Flags().Changed("poisson") {
		nu := flagPoisson
		props.PoissonRatio = &nu
	}
	return curve.Input{
		Material:  props,
		Mode:      mode,
		MaxStrain: flagMaxStrain,
		Samples:   flagSamples,
	}
}

func outWriter() (*os.File, func(), error) {
	if flagOut == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func unitSystem() units.System {
	if flagImperial {
		return units.Imperial
	}
	return units.SI
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one virtual test and print the curve as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := curve.Calculate(materialInput(cmd, flagMode))
		if err != nil {
			return err
		}

		sys := unitSystem()
		w, closeFn, err := outWriter()
		if err != nil {
			return err
		}
		defer closeFn()
		if err := report.WriteCurveCSV(w, []curve.Result{res}, units.StressFactor(sys), units.StressLabel(sys)); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "mode\t%s\n", res.Mode)
		fmt.Fprintf(tw, "yield point\t%.2f %s\n", res.YieldPoint*units.StressFactor(sys), units.StressLabel(sys))
		fmt.Fprintf(tw, "ultimate\t%.2f %s\n", res.UltimatePoint*units.StressFactor(sys), units.StressLabel(sys))
		fmt.Fprintf(tw, "rupture strain\t%.4f\n", res.RuptureStrain)
		fmt.Fprintf(tw, "brittle\t%v\n", res.Brittle)
		return tw.Flush()
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Run one virtual test and render the curve to PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := curve.Calculate(materialInput(cmd, flagMode))
		if err != nil {
			return err
		}
		w, closeFn, err := outWriter()
		if err != nil {
			return err
		}
		defer closeFn()
		return chart.Overlay([]curve.Result{res}, unitSystem(), w)
	},
}

var flexureCmd = &cobra.Command{
	Use:   "flexure",
	Short: "Three-point bend: force-deflection CSV from a tension test",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := flexure.Calculate(flexure.Input{
			Material:  materialInput(cmd, "tension").Material,
			Geometry:  flexure.Geometry{SpanMM: flagSpanMM, WidthMM: flagWidthMM, ThicknessMM: flagThicknessMM},
			MaxStrain: flagMaxStrain,
			Samples:   flagSamples,
		})
		if err != nil {
			return err
		}

		w, closeFn, err := outWriter()
		if err != nil {
			return err
		}
		defer closeFn()

		dFactor, fFactor, header := 1.0, 1.0, "deflection_mm,force_n"
		if flagImperial {
			dFactor, fFactor, header = units.MMToIn, units.NToLbf, "deflection_in,force_lbf"
		}
		fmt.Fprintln(w, header)
		for _, p := range res.Points {
			if p.ForceN == nil {
				fmt.Fprintf(w, "%g,\n", p.DeflectionMM*dFactor)
				continue
			}
			fmt.Fprintf(w, "%g,%g\n", p.DeflectionMM*dFactor, *p.ForceN*fFactor)
		}
		return nil
	},
}

func init() {
	materialFlags(simulateCmd)
	simulateCmd.Flags().StringVarP(&flagMode, "mode", "m", "tension", "Test mode (tension, compression, torsion)")

	materialFlags(chartCmd)
	chartCmd.Flags().StringVarP(&flagMode, "mode", "m", "tension", "Test mode (tension, compression, torsion)")

	materialFlags(flexureCmd)
	flexureCmd.Flags().Float64VarP(&flagSpanMM, "span", "L", 200, "Support span (mm)")
	flexureCmd.Flags().Float64VarP(&flagWidthMM, "width", "b", 20, "Specimen width (mm)")
	flexureCmd.Flags().Float64VarP(&flagThicknessMM, "thickness", "d", 10, "Specimen thickness (mm)")

	rootCmd.AddCommand(simulateCmd, chartCmd, flexureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
