package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amidamarulas/Labterial/internal/calc/batch"
	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/chart"
	"github.com/amidamarulas/Labterial/internal/repo"
	"github.com/amidamarulas/Labterial/internal/units"
	"github.com/phpdave11/gofpdf"
)

// Input describes one lab report: header fields plus the test to run
// over the listed materials.
type Input struct {
	Project   string             `json:"project"`
	Author    string             `json:"author"`
	Title     string             `json:"title"`
	Notes     string             `json:"notes"`
	Units     units.System       `json:"units,omitempty"`
	Materials []curve.Properties `json:"materials"`
	Mode      string             `json:"mode"`
	MaxStrain float64            `json:"max_strain"`
	Samples   int                `json:"samples,omitempty"`
}

type Handler struct {
	Repo repo.MaterialRepository
}

// Generate renders a PDF: header, per-material test summary, and the
// overlay chart of every curve that simulated cleanly.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Virtual Test Report"
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

	factor := units.StressFactor(input.Units)
	label := units.StressLabel(input.Units)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Test: %s, machine travel %g", input.Mode, input.MaxStrain))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	var plottable []curve.Result
	for _, item := range res.Items {
		if item.Error != "" {
			pdf.Cell(0, 5, fmt.Sprintf("%s: excluded (%s)", item.Material, item.Error))
			pdf.Ln(5)
			continue
		}
		cr := *item.Result
		plottable = append(plottable, cr)
		kind := "ductile"
		if cr.Brittle {
			kind = "brittle"
		}
		pdf.Cell(0, 5, fmt.Sprintf("%s: %s, yield %.1f %s, ultimate %.1f %s, rupture strain %.4f",
			item.Material, kind, cr.YieldPoint*factor, label, cr.UltimatePoint*factor, label, cr.RuptureStrain))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if len(plottable) > 0 {
		var png bytes.Buffer
		if err := chart.Overlay(plottable, input.Units, &png); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("overlay", opts, &png)
			pdf.ImageOptions("overlay", 15, pdf.GetY(), 180, 0, false, opts, 0, "")
		}
	}

	if input.Notes != "" {
		pdf.SetY(200)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
