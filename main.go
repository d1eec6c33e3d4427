package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "github.com/amidamarulas/Labterial/internal/auth"
	batch "github.com/amidamarulas/Labterial/internal/calc/batch"
	curve "github.com/amidamarulas/Labterial/internal/calc/curve"
	flexure "github.com/amidamarulas/Labterial/internal/calc/flexure"
	importer "github.com/amidamarulas/Labterial/internal/calc/importer"
	report "github.com/amidamarulas/Labterial/internal/calc/report"
	catalog "github.com/amidamarulas/Labterial/internal/catalog"
	repo "github.com/amidamarulas/Labterial/internal/repo"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	store := repo.NewPostgresDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file, relying on the environment")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: store}
	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	curveH := &curve.Handler{}
	batchH := &batch.Handler{}
	flexureH := &flexure.Handler{}
	catalogH := &catalog.Handler{Repo: store}
	reportH := &report.Handler{Repo: store}
	importH := &importer.Handler{Repo: store}

	// Reading the catalog and running virtual tests is open.
	api.HandleFunc("/materials", catalogH.List).Methods("GET")
	api.HandleFunc("/materials/{id:[0-9]+}", catalogH.Get).Methods("GET")

	api.HandleFunc("/tools/simulate", curveH.Calc).Methods("POST")
	api.HandleFunc("/tools/simulate/overlay", batchH.Calc).Methods("POST")
	api.HandleFunc("/tools/simulate/catalog", catalogH.Simulate).Methods("POST")
	api.HandleFunc("/tools/flexure/calc", flexureH.Calc).Methods("POST")

	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	api.HandleFunc("/tools/report/csv", reportH.CurveCSV).Methods("POST")
	api.HandleFunc("/tools/report/latex", reportH.MaterialsLaTeX).Methods("GET")
	api.HandleFunc("/tools/report/xlsx", reportH.MaterialsXLSX).Methods("GET")

	// Catalog mutation needs a session.
	secureApi := api.NewRoute().Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)
	secureApi.HandleFunc("/materials", catalogH.Create).Methods("POST")
	secureApi.HandleFunc("/materials/{id:[0-9]+}", catalogH.Update).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/tools/import/materials", importH.Materials).Methods("POST")

	dashboard := http.FileServer(http.Dir("./static"))
	mux.PathPrefix("/").Handler(dashboard)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := repo.InitDB()
	defer db.Close()
	mux := mux.NewRouter()

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	log.Println("Starting server on", addr)
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped cleanly")

	wg.Wait()
}
