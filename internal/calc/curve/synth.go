package curve

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sample is one record of the synthesized curve. Stress is nil past the
// fracture strain in non-compression modes; that is how the renderer
// detects early termination for low-ductility materials. Display is the
// strain axis re-expressed as a percentage, or left in radians for
// torsion.
type Sample struct {
	Strain  float64  `json:"strain"`
	Stress  *float64 `json:"stress"`
	Display float64  `json:"strain_display"`
}

const hardeningExponent = 0.4 // fixed hardening curvature, concave knee of ductile metals

// synthesize samples the keypoint sequence over a uniform strain grid of
// n points spanning [0, maxStrain].
func synthesize(pts []Keypoint, ms ModeScaled, rp RuptureProfile, mode TestMode, maxStrain float64, n int, fracture float64) []Sample {
	if distinctStrains(pts) < 2 {
		// Interpolation cannot be constructed; degrade to pure linear
		// elastic so the renderer still gets a plottable curve.
		return elasticOnly(ms, mode, maxStrain, n)
	}

	grid := floats.Span(make([]float64, n), 0, maxStrain)
	ey := ms.Yield / ms.Modulus
	ductile := !rp.Brittle && len(pts) >= 3
	var mid float64
	if ductile {
		mid = pts[2].Strain
	}

	samples := make([]Sample, 0, n)
	for _, e := range grid {
		if e > fracture && mode != Compression {
			samples = append(samples, Sample{Strain: e, Display: displayAxis(e, mode)})
			continue
		}
		var s float64
		switch {
		case e <= ey:
			s = ms.Modulus * e
		case ductile && e <= mid:
			ratio := (e - ey) / (mid - ey)
			if ratio < 0 {
				ratio = 0
			}
			s = ms.Yield + (ms.Ultimate-ms.Yield)*math.Pow(ratio, hardeningExponent)
		default:
			s = interpKeypoints(pts, e)
		}
		if mode == Compression {
			// Compression convention: stress is negative, strain is
			// reported as its magnitude so both axes read positive.
			s = -s
		}
		stress := s
		samples = append(samples, Sample{Strain: e, Stress: &stress, Display: displayAxis(e, mode)})
	}
	return samples
}

// interpKeypoints evaluates the piecewise-linear curve through pts at e,
// extrapolating with the slope of the nearest segment outside the range.
func interpKeypoints(pts []Keypoint, e float64) float64 {
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if e <= b.Strain || i+2 == len(pts) {
			if b.Strain == a.Strain {
				return b.Stress
			}
			t := (e - a.Strain) / (b.Strain - a.Strain)
			return a.Stress + t*(b.Stress-a.Stress)
		}
	}
	return 0
}

func elasticOnly(ms ModeScaled, mode TestMode, maxStrain float64, n int) []Sample {
	grid := floats.Span(make([]float64, n), 0, maxStrain)
	samples := make([]Sample, 0, n)
	for _, e := range grid {
		s := ms.Modulus * e
		if mode == Compression {
			s = -s
		}
		stress := s
		samples = append(samples, Sample{Strain: e, Stress: &stress, Display: displayAxis(e, mode)})
	}
	return samples
}

// displayAxis converts the canonical strain for display: percent for
// axial modes, radians as-is for torsion.
func displayAxis(e float64, mode TestMode) float64 {
	if mode == Torsion {
		return e
	}
	return e * 100
}

func distinctStrains(pts []Keypoint) int {
	count := 0
	for i, p := range pts {
		dup := false
		for _, q := range pts[:i] {
			if q.Strain == p.Strain {
				dup = true
				break
			}
		}
		if !dup {
			count++
		}
	}
	return count
}
