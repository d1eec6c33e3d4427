package flexure_test

import (
	"testing"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/calc/flexure"
	"github.com/stretchr/testify/require"
)

// TestCalculate_Transform verifies the force-deflection mapping against
// the tension curve it is derived from.
func TestCalculate_Transform(t *testing.T) {
	mat := curve.Properties{Category: "Metal", ElasticModulus: 200000, YieldStrength: 250}
	geom := flexure.Geometry{SpanMM: 200, WidthMM: 20, ThicknessMM: 10}

	res, err := flexure.Calculate(flexure.Input{
		Material:  mat,
		Geometry:  geom,
		MaxStrain: 0.10,
		Samples:   100,
	})
	require.NoError(t, err)
	require.Len(t, res.Points, 100)

	tension, err := curve.Calculate(curve.Input{
		Material: mat, Mode: "tension", MaxStrain: 0.10, Samples: 100,
	})
	require.NoError(t, err)

	for i, p := range res.Points {
		s := tension.Curve[i]
		require.InDelta(t, s.Strain*200*200/(6*10), p.DeflectionMM, 1e-9)
		if s.Stress == nil {
			require.Nil(t, p.ForceN, "fracture must survive the transform")
			continue
		}
		require.NotNil(t, p.ForceN)
		require.InDelta(t, 2*(*s.Stress)*20*100/(3*200), *p.ForceN, 1e-9)
	}
}

// TestCalculate_BadGeometry verifies geometry validation.
func TestCalculate_BadGeometry(t *testing.T) {
	_, err := flexure.Calculate(flexure.Input{
		Material:  curve.Properties{ElasticModulus: 200000, YieldStrength: 250},
		Geometry:  flexure.Geometry{SpanMM: 0, WidthMM: 20, ThicknessMM: 10},
		MaxStrain: 0.10,
	})
	require.ErrorIs(t, err, curve.ErrInvalidSpec)
}
