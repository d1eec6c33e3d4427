package catalog_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amidamarulas/Labterial/internal/calc/batch"
	"github.com/amidamarulas/Labterial/internal/catalog"
	"github.com/amidamarulas/Labterial/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mats []repo.Material
}

func (f *fakeRepo) ListMaterials(ctx context.Context, category string) ([]repo.Material, error) {
	if category == "" {
		return f.mats, nil
	}
	var out []repo.Material
	for _, m := range f.mats {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetMaterial(ctx context.Context, id int) (repo.Material, error) {
	for _, m := range f.mats {
		if m.ID == id {
			return m, nil
		}
	}
	return repo.Material{}, sql.ErrNoRows
}

func (f *fakeRepo) GetMaterialByName(ctx context.Context, name string) (repo.Material, error) {
	for _, m := range f.mats {
		if m.Name == name {
			return m, nil
		}
	}
	return repo.Material{}, sql.ErrNoRows
}

func (f *fakeRepo) CreateMaterial(ctx context.Context, m repo.Material) (int, error) {
	m.ID = len(f.mats) + 1
	f.mats = append(f.mats, m)
	return m.ID, nil
}

func (f *fakeRepo) UpdateMaterial(ctx context.Context, m repo.Material) error { return nil }

func (f *fakeRepo) BulkInsertMaterials(ctx context.Context, ms []repo.Material) (int, int, error) {
	f.mats = append(f.mats, ms...)
	return len(ms), 0, nil
}

func seeded() *fakeRepo {
	return &fakeRepo{mats: []repo.Material{
		{ID: 1, Name: "A36 Steel", Category: "Metal", ElasticModulus: 200000, YieldStrength: 250},
		{ID: 2, Name: "Alumina", Category: "Ceramic", ElasticModulus: 370000, YieldStrength: 280},
	}}
}

// TestCreate_RejectsUnresolvable verifies catalog writes go through the
// same validation as the engine.
func TestCreate_RejectsUnresolvable(t *testing.T) {
	h := &catalog.Handler{Repo: seeded()}

	body, _ := json.Marshal(repo.Material{Name: "bad", Category: "Metal", ElasticModulus: -1, YieldStrength: 10})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/materials", bytes.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body, _ = json.Marshal(repo.Material{Name: "PMMA", Category: "Polymer", ElasticModulus: 3000, YieldStrength: 70})
	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/materials", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
}

// TestSimulate_ByName runs the overlay over catalog names; unknown
// names are excluded without failing the others.
func TestSimulate_ByName(t *testing.T) {
	h := &catalog.Handler{Repo: seeded()}

	body, _ := json.Marshal(catalog.SimulateRequest{
		Names:     []string{"A36 Steel", "missing", "Alumina"},
		Mode:      "tension",
		MaxStrain: 0.10,
	})
	rec := httptest.NewRecorder()
	h.Simulate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/simulate/catalog", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res batch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Items, 3)
	assert.NotNil(t, res.Items[0].Result)
	assert.Equal(t, "material not found", res.Items[1].Error)
	require.NotNil(t, res.Items[2].Result)
	assert.True(t, res.Items[2].Result.Brittle, "alumina simulates brittle")
}
