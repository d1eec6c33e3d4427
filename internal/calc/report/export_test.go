package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/calc/report"
	"github.com/amidamarulas/Labterial/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleMaterials() []repo.Material {
	f := func(v float64) *float64 { return &v }
	return []repo.Material{
		{Name: "A36 Steel", Category: "Metal", ElasticModulus: 200000, YieldStrength: 250, UltimateStrength: f(400), PoissonRatio: f(0.26)},
		{Name: "Soda_Lime Glass", Category: "Glass", ElasticModulus: 69000, YieldStrength: 50},
	}
}

// TestWriteCurveCSV verifies the long format and the blank stress cell
// past fracture.
func TestWriteCurveCSV(t *testing.T) {
	res, err := curve.Calculate(curve.Input{
		Material: curve.Properties{
			Name: "ceramic", Category: "Ceramic",
			ElasticModulus: 100000, YieldStrength: 900, UltimateStrength: 1000,
		},
		Mode:      "tension",
		MaxStrain: 0.05,
		Samples:   50,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCurveCSV(&buf, []curve.Result{res}, 1.0, "MPa"))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 51)
	assert.Equal(t, []string{"material", "mode", "strain", "stress_mpa", "strain_display"}, rows[0])

	blank := 0
	for _, row := range rows[1:] {
		if row[3] == "" {
			blank++
		}
	}
	assert.Greater(t, blank, 0, "fractured samples export as blank stress")
}

// TestLaTeXTable verifies escaping and the placeholder for missing
// optional properties.
func TestLaTeXTable(t *testing.T) {
	out := report.LaTeXTable(sampleMaterials())
	assert.Contains(t, out, "\\begin{tabular}")
	assert.Contains(t, out, "A36 Steel & Metal & 200000.00 & 250.00 & 400.00 & 0.26")
	assert.Contains(t, out, "Soda\\_Lime Glass")
	assert.Contains(t, out, "& -- & --")
}

// TestWriteXLSX round-trips the workbook through excelize.
func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, sampleMaterials()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "name", rows[0][0])
	assert.True(t, strings.HasPrefix(rows[1][0], "A36"))
}
