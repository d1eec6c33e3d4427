package units_test

import (
	"testing"

	"github.com/amidamarulas/Labterial/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvert verifies the scale is linear and undefined samples stay
// undefined, so curve shape and termination are preserved.
func TestConvert(t *testing.T) {
	a, b := 100.0, -250.0
	out := units.Convert([]*float64{&a, nil, &b}, units.MPaToKsi)
	require.Len(t, out, 3)
	assert.InDelta(t, 14.50377, *out[0], 1e-9)
	assert.Nil(t, out[1])
	assert.InDelta(t, -36.259425, *out[2], 1e-9)
}

func TestStressFactor(t *testing.T) {
	assert.Equal(t, 1.0, units.StressFactor(units.SI))
	assert.Equal(t, units.MPaToKsi, units.StressFactor(units.Imperial))
	assert.Equal(t, "MPa", units.StressLabel(units.SI))
	assert.Equal(t, "ksi", units.StressLabel(units.Imperial))
}
