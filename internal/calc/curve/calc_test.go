package curve_test

import (
	"encoding/json"
	"testing"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steelInput(mode string) curve.Input {
	return curve.Input{
		Material: curve.Properties{
			Name:           "A36",
			Category:       "Metal",
			ElasticModulus: 200000,
			YieldStrength:  250,
		},
		Mode:      mode,
		MaxStrain: 0.10,
		Samples:   300,
	}
}

// TestCalculate_OriginAndGrid verifies the first sample is exactly
// (0, 0, 0) and the strain grid spans [0, max] with the requested count,
// strictly increasing.
func TestCalculate_OriginAndGrid(t *testing.T) {
	res, err := curve.Calculate(steelInput("tension"))
	require.NoError(t, err)
	require.Len(t, res.Curve, 300)

	first := res.Curve[0]
	require.Equal(t, 0.0, first.Strain)
	require.NotNil(t, first.Stress)
	require.Equal(t, 0.0, *first.Stress)
	require.Equal(t, 0.0, first.Display)

	last := res.Curve[len(res.Curve)-1]
	require.InDelta(t, 0.10, last.Strain, 1e-12)
	for i := 1; i < len(res.Curve); i++ {
		require.Greater(t, res.Curve[i].Strain, res.Curve[i-1].Strain)
	}
}

// TestCalculate_ElasticLinearity verifies stress == E*e for every sample
// at or below the yield strain (0.00125 for the reference steel).
func TestCalculate_ElasticLinearity(t *testing.T) {
	res, err := curve.Calculate(steelInput("tension"))
	require.NoError(t, err)
	require.InDelta(t, 0.00125, res.YieldStrain, 1e-12)
	require.InDelta(t, 250, res.YieldPoint, 1e-12)

	checked := 0
	for _, s := range res.Curve {
		if s.Strain > res.YieldStrain {
			break
		}
		require.NotNil(t, s.Stress)
		require.InDelta(t, 200000*s.Strain, *s.Stress, 1e-6)
		checked++
	}
	require.Greater(t, checked, 1, "grid must sample the elastic region")
}

// TestCalculate_TorsionScaling verifies the shear transforms:
// G = E/(2(1+nu)) and the Von Mises shear yield 0.577*Sy.
func TestCalculate_TorsionScaling(t *testing.T) {
	in := steelInput("torsion")
	nu := 0.3
	in.Material.PoissonRatio = &nu
	in.MaxStrain = 0.05

	res, err := curve.Calculate(in)
	require.NoError(t, err)
	require.InDelta(t, 200000/2.6, res.Modulus, 1e-6)
	require.InDelta(t, 144.25, res.YieldPoint, 1e-9)

	// Early torsion samples follow tau = G*gamma, axis stays in radians.
	s := res.Curve[1]
	require.InDelta(t, res.Modulus*s.Strain, *s.Stress, 1e-6)
	require.Equal(t, s.Strain, s.Display)
}

// TestCalculate_CompressionSign verifies compression stress is never
// positive and no sample inside the machine travel is undefined.
func TestCalculate_CompressionSign(t *testing.T) {
	res, err := curve.Calculate(steelInput("compression"))
	require.NoError(t, err)
	for _, s := range res.Curve {
		require.NotNil(t, s.Stress, "compression curves are never truncated in the visible domain")
		require.LessOrEqual(t, *s.Stress, 0.0)
	}
	// Below the yield strain the elastic identity holds with the sign
	// flipped: stress = -(E*e).
	s := res.Curve[1]
	require.Less(t, s.Strain, res.YieldStrain)
	require.InDelta(t, -(200000 * s.Strain), *s.Stress, 1e-6)
}

// TestCalculate_CeramicBrittle verifies the brittle classification and
// the elastic-to-fracture shape with early termination.
func TestCalculate_CeramicBrittle(t *testing.T) {
	in := curve.Input{
		Material: curve.Properties{
			Category:         "Ceramic",
			ElasticModulus:   100000,
			YieldStrength:    900,
			UltimateStrength: 1000, // = E * 0.01
		},
		Mode:      "tension",
		MaxStrain: 0.05,
		Samples:   300,
	}
	res, err := curve.Calculate(in)
	require.NoError(t, err)
	require.True(t, res.Brittle)
	require.InDelta(t, 0.011, res.RuptureStrain, 1e-12)

	sawUndefined := false
	for _, s := range res.Curve {
		if s.Stress == nil {
			sawUndefined = true
			assert.Greater(t, s.Strain, res.RuptureStrain)
		} else {
			assert.LessOrEqual(t, s.Strain, res.RuptureStrain)
		}
	}
	require.True(t, sawUndefined, "fracture below machine travel must truncate the curve")
}

// TestCalculate_Idempotent verifies two identical invocations produce
// bit-identical output. The engine holds no state across calls.
func TestCalculate_Idempotent(t *testing.T) {
	a, err := curve.Calculate(steelInput("tension"))
	require.NoError(t, err)
	b, err := curve.Calculate(steelInput("tension"))
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, ja, jb)
}

// TestCalculate_Defaulting verifies the permissive-input policy: missing
// ultimate strength and sample count resolve to their defaults.
func TestCalculate_Defaulting(t *testing.T) {
	in := steelInput("tension")
	in.Samples = 0
	res, err := curve.Calculate(in)
	require.NoError(t, err)
	require.Len(t, res.Curve, curve.DefaultSampleCount)
	require.InDelta(t, 275, res.UltimatePoint, 1e-9, "Su defaults to 1.1*Sy")
}

// TestCalculate_InvalidSpec covers the hard validation failures.
func TestCalculate_InvalidSpec(t *testing.T) {
	cases := map[string]func(*curve.Input){
		"zero modulus":     func(in *curve.Input) { in.Material.ElasticModulus = 0 },
		"negative yield":   func(in *curve.Input) { in.Material.YieldStrength = -5 },
		"zero travel":      func(in *curve.Input) { in.MaxStrain = 0 },
		"unknown mode":     func(in *curve.Input) { in.Mode = "flexure" },
		"poisson below -1": func(in *curve.Input) { in.Mode = "torsion"; nu := -1.5; in.Material.PoissonRatio = &nu },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := steelInput("tension")
			mutate(&in)
			_, err := curve.Calculate(in)
			require.ErrorIs(t, err, curve.ErrInvalidSpec)
		})
	}
}

// TestClassifyRupture covers the category table and the torsion margin.
func TestClassifyRupture(t *testing.T) {
	resolve := func(cat string) curve.Spec {
		s, err := curve.Resolve(curve.Properties{
			Category:         cat,
			ElasticModulus:   100000,
			YieldStrength:    200,
			UltimateStrength: 300,
		})
		require.NoError(t, err)
		return s
	}

	cases := []struct {
		cat     string
		strain  float64
		brittle bool
	}{
		{"Metal", 0.18, false},
		{"Polymer", 0.60, false},
		{"Composite", 0.025, true},
		{"Ceramic", 300.0 / 100000.0 * 1.1, true},
		{"Glass", 300.0 / 100000.0 * 1.1, true},
		{"Unobtainium", 0.18, false}, // unknown categories behave as metals
	}
	for _, tc := range cases {
		rp := curve.ClassifyRupture(resolve(tc.cat), curve.Tension)
		assert.InDelta(t, tc.strain, rp.RuptureStrain, 1e-12, tc.cat)
		assert.Equal(t, tc.brittle, rp.Brittle, tc.cat)

		rpT := curve.ClassifyRupture(resolve(tc.cat), curve.Torsion)
		assert.InDelta(t, tc.strain*1.5, rpT.RuptureStrain, 1e-12, tc.cat)
	}
}
