// Package chart renders curve overlays to PNG for the report generator
// and the CLI. Plotting consumes the engine output as-is; undefined
// samples terminate a series.
package chart

import (
	"fmt"
	"io"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/units"
	"github.com/wcharczuk/go-chart/v2"
)

// Overlay draws one series per result over a shared strain axis, with
// stresses rescaled into the requested unit system.
func Overlay(results []curve.Result, sys units.System, w io.Writer) error {
	if len(results) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	factor := units.StressFactor(sys)

	series := make([]chart.Series, 0, len(results))
	for _, res := range results {
		ptrs := make([]*float64, len(res.Curve))
		for i, s := range res.Curve {
			ptrs[i] = s.Stress
		}
		conv := units.Convert(ptrs, factor)

		var xs, ys []float64
		for i, s := range res.Curve {
			if conv[i] == nil {
				break
			}
			xs = append(xs, s.Display)
			ys = append(ys, *conv[i])
		}
		if len(xs) < 2 {
			continue
		}
		name := res.Material
		if name == "" {
			name = string(res.Mode)
		}
		series = append(series, chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys})
	}
	if len(series) == 0 {
		return fmt.Errorf("no plottable series")
	}

	xName := "Strain (%)"
	if results[0].Mode == curve.Torsion {
		xName = "Shear angle (rad)"
	}
	graph := chart.Chart{
		Title:  fmt.Sprintf("Virtual %s test", results[0].Mode),
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: fmt.Sprintf("Stress (%s)", units.StressLabel(sys))},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
