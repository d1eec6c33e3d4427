package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/amidamarulas/Labterial/internal/calc/batch"
	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/repo"
	"github.com/amidamarulas/Labterial/internal/units"
	"github.com/xuri/excelize/v2"
)

// WriteCurveCSV writes simulated curves as long-format CSV: one row per
// sample, undefined stress left blank to mark fracture.
func WriteCurveCSV(w io.Writer, results []curve.Result, factor float64, label string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"material", "mode", "strain", fmt.Sprintf("stress_%s", strings.ToLower(label)), "strain_display"}); err != nil {
		return err
	}
	for _, res := range results {
		for _, s := range res.Curve {
			stress := ""
			if s.Stress != nil {
				stress = strconv.FormatFloat(*s.Stress*factor, 'g', -1, 64)
			}
			row := []string{
				res.Material,
				string(res.Mode),
				strconv.FormatFloat(s.Strain, 'g', -1, 64),
				stress,
				strconv.FormatFloat(s.Display, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// LaTeXTable renders the material property table as a tabular block for
// pasting into papers.
func LaTeXTable(mats []repo.Material) string {
	var b strings.Builder
	b.WriteString("\\begin{tabular}{lrrrrr}\n")
	b.WriteString("\\hline\n")
	b.WriteString("Material & Category & $E$ (MPa) & $S_y$ (MPa) & $S_u$ (MPa) & $\\nu$ \\\\\n")
	b.WriteString("\\hline\n")
	for _, m := range mats {
		su, nu := "--", "--"
		if m.UltimateStrength != nil {
			su = fmt.Sprintf("%.2f", *m.UltimateStrength)
		}
		if m.PoissonRatio != nil {
			nu = fmt.Sprintf("%.2f", *m.PoissonRatio)
		}
		fmt.Fprintf(&b, "%s & %s & %.2f & %.2f & %s & %s \\\\\n",
			latexEscape(m.Name), latexEscape(m.Category), m.ElasticModulus, m.YieldStrength, su, nu)
	}
	b.WriteString("\\hline\n")
	b.WriteString("\\end{tabular}\n")
	return b.String()
}

func latexEscape(s string) string {
	r := strings.NewReplacer("&", "\\&", "%", "\\%", "_", "\\_", "#", "\\#", "$", "\\$")
	return r.Replace(s)
}

// WriteXLSX writes the property table as a single-sheet workbook.
func WriteXLSX(w io.Writer, mats []repo.Material) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"name", "category", "elastic_modulus", "yield_strength", "ultimate_strength", "poisson_ratio"}
	for i, hdr := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, hdr); err != nil {
			return err
		}
	}
	for row, m := range mats {
		values := []any{m.Name, m.Category, m.ElasticModulus, m.YieldStrength, nil, nil}
		if m.UltimateStrength != nil {
			values[4] = *m.UltimateStrength
		}
		if m.PoissonRatio != nil {
			values[5] = *m.PoissonRatio
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

// CurveCSV simulates the requested materials and streams the result as
// CSV, mirroring the dashboard's data download.
func (h *Handler) CurveCSV(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Units == "" {
		input.Units = units.SI
	}
	res, err := batch.Calculate(batch.Input{
		Materials: input.Materials,
		Mode:      input.Mode,
		MaxStrain: input.MaxStrain,
		Samples:   input.Samples,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var results []curve.Result
	for _, item := range res.Items {
		if item.Result != nil {
			results = append(results, *item.Result)
		}
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"simulation.csv\"")
	if err := WriteCurveCSV(w, results, units.StressFactor(input.Units), units.StressLabel(input.Units)); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}

// MaterialsLaTeX exports the catalog (optionally filtered by category)
// as a LaTeX tabular.
func (h *Handler) MaterialsLaTeX(w http.ResponseWriter, r *http.Request) {
	mats, err := h.Repo.ListMaterials(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, LaTeXTable(mats))
}

// MaterialsXLSX exports the catalog as a workbook.
func (h *Handler) MaterialsXLSX(w http.ResponseWriter, r *http.Request) {
	mats, err := h.Repo.ListMaterials(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"materials.xlsx\"")
	if err := WriteXLSX(w, mats); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
