package repo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/amidamarulas/Labterial/internal/calc/curve"
	"github.com/lib/pq"
)

// Material is one catalog row. Ultimate strength and Poisson ratio are
// nullable; the engine defaults them at resolution time.
type Material struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	ElasticModulus   float64  `json:"elastic_modulus"`
	YieldStrength    float64  `json:"yield_strength"`
	UltimateStrength *float64 `json:"ultimate_strength,omitempty"`
	PoissonRatio     *float64 `json:"poisson_ratio,omitempty"`
}

// Properties maps the row into the engine's input shape.
func (m Material) Properties() curve.Properties {
	p := curve.Properties{
		Name:           m.Name,
		Category:       m.Category,
		ElasticModulus: m.ElasticModulus,
		YieldStrength:  m.YieldStrength,
		PoissonRatio:   m.PoissonRatio,
	}
	if m.UltimateStrength != nil {
		p.UltimateStrength = *m.UltimateStrength
	}
	return p
}

type MaterialRepository interface {
	ListMaterials(ctx context.Context, category string) ([]Material, error)
	GetMaterial(ctx context.Context, id int) (Material, error)
	GetMaterialByName(ctx context.Context, name string) (Material, error)
	CreateMaterial(ctx context.Context, m Material) (int, error)
	UpdateMaterial(ctx context.Context, m Material) error
	BulkInsertMaterials(ctx context.Context, ms []Material) (added, skipped int, err error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const materialColumns = "id, name, category, elastic_modulus, yield_strength, ultimate_strength, poisson_ratio"

func (r *PostgresRepository) ListMaterials(ctx context.Context, category string) ([]Material, error) {
	query := "SELECT " + materialColumns + " FROM materials"
	args := []any{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.ElasticModulus, &m.YieldStrength, &m.UltimateStrength, &m.PoissonRatio); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetMaterial(ctx context.Context, id int) (Material, error) {
	var m Material
	query := "SELECT " + materialColumns + " FROM materials WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Name, &m.Category, &m.ElasticModulus, &m.YieldStrength, &m.UltimateStrength, &m.PoissonRatio)
	return m, err
}

func (r *PostgresRepository) GetMaterialByName(ctx context.Context, name string) (Material, error) {
	var m Material
	query := "SELECT " + materialColumns + " FROM materials WHERE name = $1"
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&m.ID, &m.Name, &m.Category, &m.ElasticModulus, &m.YieldStrength, &m.UltimateStrength, &m.PoissonRatio)
	return m, err
}

func (r *PostgresRepository) CreateMaterial(ctx context.Context, m Material) (int, error) {
	var id int
	query := "INSERT INTO materials (name, category, elastic_modulus, yield_strength, ultimate_strength, poisson_ratio) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, m.Name, m.Category, m.ElasticModulus, m.YieldStrength, m.UltimateStrength, m.PoissonRatio).Scan(&id)
	return id, err
}

func (r *PostgresRepository) UpdateMaterial(ctx context.Context, m Material) error {
	query := "UPDATE materials SET name=$1, category=$2, elastic_modulus=$3, yield_strength=$4, ultimate_strength=$5, poisson_ratio=$6 WHERE id=$7"
	_, err := r.db.ExecContext(ctx, query, m.Name, m.Category, m.ElasticModulus, m.YieldStrength, m.UltimateStrength, m.PoissonRatio, m.ID)
	return err
}

// BulkInsertMaterials loads a batch, skipping rows whose name already
// exists instead of failing the whole import.
func (r *PostgresRepository) BulkInsertMaterials(ctx context.Context, ms []Material) (added, skipped int, err error) {
	for _, m := range ms {
		if _, insErr := r.CreateMaterial(ctx, m); insErr != nil {
			if pqErr, ok := insErr.(*pq.Error); ok && pqErr.Code == "23505" {
				skipped++
				continue
			}
			return added, skipped, insErr
		}
		added++
	}
	return added, skipped, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS materials (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL,
	elastic_modulus DOUBLE PRECISION NOT NULL,
	yield_strength DOUBLE PRECISION NOT NULL,
	ultimate_strength DOUBLE PRECISION,
	poisson_ratio DOUBLE PRECISION
);
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password TEXT NOT NULL
);`

// InitDB opens the Postgres pool, creates the schema and seeds the
// starter materials into an empty catalog.
func InitDB() *sql.DB {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			connStr = connStr + "?sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("DB configuration error:", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		log.Fatal("DB not responding:", err)
	}
	if _, err = db.Exec(schema); err != nil {
		log.Fatal("Schema init error:", err)
	}
	seed(db)
	return db
}

func seed(db *sql.DB) {
	var count int
	if err := db.QueryRow("SELECT count(*) FROM materials").Scan(&count); err != nil || count > 0 {
		return
	}
	f := func(v float64) *float64 { return &v }
	starter := []Material{
		{Name: "A36 Steel", Category: "Metal", ElasticModulus: 200000, YieldStrength: 250, UltimateStrength: f(400), PoissonRatio: f(0.26)},
		{Name: "6061 Aluminium", Category: "Metal", ElasticModulus: 68900, YieldStrength: 276, UltimateStrength: f(310), PoissonRatio: f(0.33)},
	}
	if _, _, err := NewPostgresDB(db).BulkInsertMaterials(context.Background(), starter); err != nil {
		log.Println("Seed error:", err)
	}
}
