package curve

import "fmt"

// Keypoint is one control point of the piecewise curve.
type Keypoint struct {
	Strain float64
	Stress float64
}

const (
	hardeningSpan   = 0.7  // position of the ultimate point in the plastic range
	softeningFactor = 0.85 // engineering stress at separation, post-necking
	// Compression specimens do not fracture in this model: the hardening
	// tail and the cutoff are pushed past the machine travel.
	compressionTailStrain  = 1.5
	compressionTailStress  = 1.5
	compressionCutoffScale = 2.0
)

// buildKeypoints assembles the ordered control-point sequence
// origin -> yield -> [ultimate] -> fracture [-> post-fracture] and
// returns it together with the strain beyond which the curve is cut
// off. Strains must come out strictly increasing; degenerate inputs
// that would collapse two points fail instead of producing a fold.
func buildKeypoints(ms ModeScaled, rp RuptureProfile, mode TestMode, maxStrain float64) ([]Keypoint, float64, error) {
	ey := ms.Yield / ms.Modulus
	pts := []Keypoint{{0, 0}, {ey, ms.Yield}}

	if rp.Brittle {
		// Elastic straight to fracture, no plastic plateau.
		if rp.RuptureStrain <= ey {
			return nil, 0, fmt.Errorf("%w: rupture strain %g does not exceed yield strain %g", ErrDegenerateCurve, rp.RuptureStrain, ey)
		}
		pts = append(pts, Keypoint{rp.RuptureStrain, ms.Ultimate})
		return pts, rp.RuptureStrain, nil
	}

	mid := ey + hardeningSpan*(rp.RuptureStrain-ey)
	if mid <= ey {
		return nil, 0, fmt.Errorf("%w: hardening plateau collapses onto yield at strain %g", ErrDegenerateCurve, ey)
	}
	pts = append(pts, Keypoint{mid, ms.Ultimate})

	if mode == Compression {
		tail := compressionTailStrain * maxStrain
		if tail <= mid {
			return nil, 0, fmt.Errorf("%w: machine travel %g too short for the plastic range", ErrDegenerateCurve, maxStrain)
		}
		pts = append(pts, Keypoint{tail, compressionTailStress * ms.Ultimate})
		return pts, compressionCutoffScale * maxStrain, nil
	}

	if rp.RuptureStrain <= mid {
		return nil, 0, fmt.Errorf("%w: fracture strain %g does not exceed the ultimate point", ErrDegenerateCurve, rp.RuptureStrain)
	}
	pts = append(pts, Keypoint{rp.RuptureStrain, softeningFactor * ms.Ultimate})
	return pts, rp.RuptureStrain, nil
}
