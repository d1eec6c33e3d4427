package curve

import (
	"errors"
	"fmt"
	"strings"
)

// Engine errors. A failed simulation only drops that material; callers
// running overlays keep going with the rest.
var (
	ErrInvalidSpec     = errors.New("invalid material spec")
	ErrDegenerateCurve = errors.New("degenerate curve")
)

// TestMode selects the loading configuration of the virtual machine.
// Flexure is not a mode: it is a geometric transform over a tension
// curve, see the flexure package.
type TestMode string

const (
	Tension     TestMode = "tension"
	Compression TestMode = "compression"
	Torsion     TestMode = "torsion"
)

// ParseMode accepts the mode names case-insensitively.
func ParseMode(s string) (TestMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tension":
		return Tension, nil
	case "compression":
		return Compression, nil
	case "torsion":
		return Torsion, nil
	}
	return "", fmt.Errorf("%w: unknown test mode %q", ErrInvalidSpec, s)
}

// Category drives the ductility classification.
type Category string

const (
	Metal     Category = "Metal"
	Polymer   Category = "Polymer"
	Ceramic   Category = "Ceramic"
	Glass     Category = "Glass"
	Composite Category = "Composite"
)

// ParseCategory is permissive: anything it does not recognize behaves as
// a metal. Sparse catalogs with odd category labels must stay usable.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "polymer":
		return Polymer
	case "ceramic":
		return Ceramic
	case "glass":
		return Glass
	case "composite":
		return Composite
	case "metal":
		return Metal
	}
	return Metal
}

// Properties is the raw material row as it arrives from the catalog or
// an API payload. Optional fields may be absent.
type Properties struct {
	Name             string   `json:"name,omitempty"`
	Category         string   `json:"category,omitempty"`
	ElasticModulus   float64  `json:"elastic_modulus"`
	YieldStrength    float64  `json:"yield_strength"`
	UltimateStrength float64  `json:"ultimate_strength,omitempty"`
	PoissonRatio     *float64 `json:"poisson_ratio,omitempty"`
}

// Spec is a fully defaulted, validated material. After Resolve,
// UltimateStrength >= YieldStrength always holds.
type Spec struct {
	Category         Category
	ElasticModulus   float64
	YieldStrength    float64
	UltimateStrength float64
	PoissonRatio     float64
}

const (
	defaultPoissonRatio = 0.3
	ultimateOverYield   = 1.1 // assumed hardening when Su is missing or below Sy
	DefaultSampleCount  = 300
)

// Resolve validates the raw properties and fills every optional field.
// Missing or inconsistent optional values are defaulted, never rejected.
func Resolve(p Properties) (Spec, error) {
	if p.ElasticModulus <= 0 {
		return Spec{}, fmt.Errorf("%w: elastic modulus must be positive, got %g", ErrInvalidSpec, p.ElasticModulus)
	}
	if p.YieldStrength <= 0 {
		return Spec{}, fmt.Errorf("%w: yield strength must be positive, got %g", ErrInvalidSpec, p.YieldStrength)
	}
	su := p.UltimateStrength
	if su < p.YieldStrength {
		su = p.YieldStrength * ultimateOverYield
	}
	nu := defaultPoissonRatio
	if p.PoissonRatio != nil {
		nu = *p.PoissonRatio
	}
	return Spec{
		Category:         ParseCategory(p.Category),
		ElasticModulus:   p.ElasticModulus,
		YieldStrength:    p.YieldStrength,
		UltimateStrength: su,
		PoissonRatio:     nu,
	}, nil
}
