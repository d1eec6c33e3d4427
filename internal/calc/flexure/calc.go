package flexure

import (
	"fmt"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
)

// Three-point bend expressed as a transform over a tension curve. The
// beam geometry is in mm; the engine's tension units and sign
// conventions carry through unchanged.
type Geometry struct {
	SpanMM      float64 `json:"span_mm"`
	WidthMM     float64 `json:"width_mm"`
	ThicknessMM float64 `json:"thickness_mm"`
}

type Input struct {
	Material  curve.Properties `json:"material"`
	Geometry  Geometry         `json:"geometry"`
	MaxStrain float64          `json:"max_strain"`
	Samples   int              `json:"samples,omitempty"`
}

// Point is one force-deflection record. Force is nil where the
// underlying tension sample is past fracture.
type Point struct {
	DeflectionMM float64  `json:"deflection_mm"`
	ForceN       *float64 `json:"force_n"`
}

type Result struct {
	Material string   `json:"material,omitempty"`
	Geometry Geometry `json:"geometry"`
	Points   []Point  `json:"points"`
}

// Calculate runs a tension test and maps it to the force-deflection
// plane: F = 2*sigma*b*d^2 / (3*L), delta = eps*L^2 / (6*d).
func Calculate(in Input) (Result, error) {
	g := in.Geometry
	if g.SpanMM <= 0 || g.WidthMM <= 0 || g.ThicknessMM <= 0 {
		return Result{}, fmt.Errorf("%w: beam geometry must be positive", curve.ErrInvalidSpec)
	}

	tension, err := curve.Calculate(curve.Input{
		Material:  in.Material,
		Mode:      string(curve.Tension),
		MaxStrain: in.MaxStrain,
		Samples:   in.Samples,
	})
	if err != nil {
		return Result{}, err
	}

	pts := make([]Point, 0, len(tension.Curve))
	for _, s := range tension.Curve {
		p := Point{DeflectionMM: s.Strain * g.SpanMM * g.SpanMM / (6 * g.ThicknessMM)}
		if s.Stress != nil {
			f := 2 * (*s.Stress) * g.WidthMM * g.ThicknessMM * g.ThicknessMM / (3 * g.SpanMM)
			p.ForceN = &f
		}
		pts = append(pts, p)
	}
	return Result{Material: in.Material.Name, Geometry: g, Points: pts}, nil
}
