package curve

import "fmt"

// ModeScaled carries the modulus and strength points rescaled into the
// native quantities of the requested test mode.
type ModeScaled struct {
	Modulus  float64
	Yield    float64
	Ultimate float64
}

const (
	shearYieldFactor    = 0.577 // Von Mises, 1/sqrt(3)
	shearUltimateFactor = 0.6
)

// AdaptMode rescales the material for the test mode. Tension and
// compression pass through; torsion converts to shear quantities via
// the isotropic shear modulus G = E / (2(1+nu)).
func AdaptMode(s Spec, mode TestMode) (ModeScaled, error) {
	if mode != Torsion {
		return ModeScaled{
			Modulus:  s.ElasticModulus,
			Yield:    s.YieldStrength,
			Ultimate: s.UltimateStrength,
		}, nil
	}
	den := 2 * (1 + s.PoissonRatio)
	if den <= 0 {
		return ModeScaled{}, fmt.Errorf("%w: poisson ratio %g leaves the shear modulus undefined", ErrInvalidSpec, s.PoissonRatio)
	}
	return ModeScaled{
		Modulus:  s.ElasticModulus / den,
		Yield:    s.YieldStrength * shearYieldFactor,
		Ultimate: s.UltimateStrength * shearUltimateFactor,
	}, nil
}
