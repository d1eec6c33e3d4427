package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/repo"
	"github.com/xuri/excelize/v2"
)

// Handler ingests a spreadsheet of material rows into the catalog.
type Handler struct {
	Repo repo.MaterialRepository
}

type ImportResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Bad     []string `json:"bad,omitempty"`
}

// Materials accepts a multipart upload with an XLSX file. Expected
// columns: name, category, elastic_modulus, yield_strength, then
// optional ultimate_strength and poisson_ratio. Bad rows are reported,
// not fatal; duplicates are skipped.
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var mats []repo.Material
	var bad []string
	for i := 1; i < len(rows); i++ {
		m, err := parseMaterialRow(rows[i])
		if err != nil {
			bad = append(bad, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		mats = append(mats, m)
	}

	added, skipped, err := h.Repo.BulkInsertMaterials(r.Context(), mats)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Added: added, Skipped: skipped, Bad: bad})
}

func parseMaterialRow(row []string) (repo.Material, error) {
	if len(row) < 4 {
		return repo.Material{}, fmt.Errorf("need name, category, elastic_modulus, yield_strength")
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return repo.Material{}, fmt.Errorf("empty name")
	}
	e, err := toFloat(row[2])
	if err != nil {
		return repo.Material{}, fmt.Errorf("elastic_modulus: %v", err)
	}
	sy, err := toFloat(row[3])
	if err != nil {
		return repo.Material{}, fmt.Errorf("yield_strength: %v", err)
	}

	m := repo.Material{
		Name:           name,
		Category:       strings.TrimSpace(row[1]),
		ElasticModulus: e,
		YieldStrength:  sy,
	}
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		if su, err := toFloat(row[4]); err == nil {
			m.UltimateStrength = &su
		}
	}
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		if nu, err := toFloat(row[5]); err == nil {
			m.PoissonRatio = &nu
		}
	}
	// The same validation a manual create goes through.
	if _, err := curve.Resolve(m.Properties()); err != nil {
		return repo.Material{}, err
	}
	return m, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
