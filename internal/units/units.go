// Package units holds the linear post-scales for the imperial display
// system. The engine always works in MPa/mm; conversion never touches
// curve shape or keypoint ordering.
package units

type System string

const (
	SI       System = "SI"
	Imperial System = "Imperial"
)

const (
	MPaToKsi = 0.1450377
	MMToIn   = 0.0393701
	NToLbf   = 0.224809
)

// StressFactor returns the multiplier from MPa into the target system.
func StressFactor(s System) float64 {
	if s == Imperial {
		return MPaToKsi
	}
	return 1.0
}

// StressLabel returns the pressure unit label of the target system.
func StressLabel(s System) string {
	if s == Imperial {
		return "ksi"
	}
	return "MPa"
}

// Convert applies a linear factor over a sample sequence, leaving nil
// (undefined) values alone.
func Convert(values []*float64, factor float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		c := *v * factor
		out[i] = &c
	}
	return out
}
