package curve

import "fmt"

// Input is one simulation request: a material row, a test mode and the
// machine configuration.
type Input struct {
	Material  Properties `json:"material"`
	Mode      string     `json:"mode"`
	MaxStrain float64    `json:"max_strain"`
	Samples   int        `json:"samples,omitempty"`
}

// Result is the synthesized test curve plus the derived quantities the
// dashboard annotates (yield point, rupture strain, ductility class).
type Result struct {
	Material      string   `json:"material,omitempty"`
	Mode          TestMode `json:"mode"`
	Modulus       float64  `json:"modulus"`
	YieldStrain   float64  `json:"yield_strain"`
	YieldPoint    float64  `json:"yield_point"`
	UltimatePoint float64  `json:"ultimate_point"`
	RuptureStrain float64  `json:"rupture_strain"`
	Brittle       bool     `json:"brittle"`
	Curve         []Sample `json:"curve"`
}

// Calculate runs one virtual test. It is a pure function of its inputs:
// no state survives the call and identical inputs give identical output.
func Calculate(in Input) (Result, error) {
	mode, err := ParseMode(in.Mode)
	if err != nil {
		return Result{}, err
	}
	if in.MaxStrain <= 0 {
		return Result{}, fmt.Errorf("%w: machine travel must be positive, got %g", ErrInvalidSpec, in.MaxStrain)
	}
	n := in.Samples
	if n < 2 {
		n = DefaultSampleCount
	}

	spec, err := Resolve(in.Material)
	if err != nil {
		return Result{}, err
	}
	profile := ClassifyRupture(spec, mode)
	scaled, err := AdaptMode(spec, mode)
	if err != nil {
		return Result{}, err
	}
	pts, fracture, err := buildKeypoints(scaled, profile, mode, in.MaxStrain)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Material:      in.Material.Name,
		Mode:          mode,
		Modulus:       scaled.Modulus,
		YieldStrain:   scaled.Yield / scaled.Modulus,
		YieldPoint:    scaled.Yield,
		UltimatePoint: scaled.Ultimate,
		RuptureStrain: profile.RuptureStrain,
		Brittle:       profile.Brittle,
		Curve:         synthesize(pts, scaled, profile, mode, in.MaxStrain, n, fracture),
	}, nil
}
