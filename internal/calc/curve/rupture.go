package curve

// RuptureProfile is the intrinsic fracture behaviour derived from the
// material category, already scaled for the test mode.
type RuptureProfile struct {
	RuptureStrain float64 `json:"rupture_strain"`
	Brittle       bool    `json:"brittle"`
}

const (
	brittleThreshold       = 0.05
	torsionDuctilityFactor = 1.5 // shear ductility margin

	metalRuptureStrain     = 0.18
	polymerRuptureStrain   = 0.60
	compositeRuptureStrain = 0.025
	ceramicRuptureFactor   = 1.1 // applied to Su/E
)

// ClassifyRupture maps the material category to its intrinsic rupture
// strain. The switch is exhaustive over the known categories; anything
// else takes the metal branch, same as ParseCategory.
func ClassifyRupture(s Spec, mode TestMode) RuptureProfile {
	var base float64
	switch s.Category {
	case Ceramic, Glass:
		base = s.UltimateStrength / s.ElasticModulus * ceramicRuptureFactor
	case Polymer:
		base = polymerRuptureStrain
	case Composite:
		base = compositeRuptureStrain
	case Metal:
		base = metalRuptureStrain
	default:
		base = metalRuptureStrain
	}
	if mode == Torsion {
		base *= torsionDuctilityFactor
	}
	return RuptureProfile{RuptureStrain: base, Brittle: base < brittleThreshold}
}
