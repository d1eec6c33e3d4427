package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/amidamarulas/Labterial/internal/calc/batch"
	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/amidamarulas/Labterial/internal/repo"
	"github.com/gorilla/mux"
)

// Handler serves the material catalog and catalog-backed simulation.
type Handler struct {
	Repo repo.MaterialRepository
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mats, err := h.Repo.ListMaterials(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if mats == nil {
		mats = []repo.Material{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mats)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	m, err := h.Repo.GetMaterial(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Material not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var m repo.Material
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	// Reject rows the engine could never resolve; everything optional
	// stays optional.
	if _, err := curve.Resolve(m.Properties()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if m.Name == "" {
		http.Error(w, "Material name required", http.StatusBadRequest)
		return
	}
	id, err := h.Repo.CreateMaterial(r.Context(), m)
	if err != nil {
		http.Error(w, "Material already exists or DB error", http.StatusConflict)
		return
	}
	m.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var m repo.Material
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	m.ID = id
	if _, err := curve.Resolve(m.Properties()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.UpdateMaterial(r.Context(), m); err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SimulateRequest runs the engine over named catalog rows under one
// test configuration, for the overlay plot.
type SimulateRequest struct {
	Names     []string `json:"names"`
	Mode      string   `json:"mode"`
	MaxStrain float64  `json:"max_strain"`
	Samples   int      `json:"samples,omitempty"`
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(req.Names) == 0 {
		http.Error(w, "No materials selected", http.StatusBadRequest)
		return
	}

	// Lookup failures are isolated per material, same as simulation
	// failures: the rest of the overlay still renders.
	out := batch.Result{Items: make([]batch.Item, 0, len(req.Names))}
	for _, name := range req.Names {
		item := batch.Item{Material: name}
		m, err := h.Repo.GetMaterialByName(r.Context(), name)
		if err != nil {
			item.Error = "material not found"
			out.Items = append(out.Items, item)
			continue
		}
		res, err := curve.Calculate(curve.Input{
			Material:  m.Properties(),
			Mode:      req.Mode,
			MaxStrain: req.MaxStrain,
			Samples:   req.Samples,
		})
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = &res
		}
		out.Items = append(out.Items, item)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
