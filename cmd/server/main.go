package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ledgerapi/internal/auth"
	"ledgerapi/internal/config"
	"ledgerapi/internal/handlers/bills"
	"ledgerapi/internal/handlers/ledger"
	apphttp "ledgerapi/internal/http"
	"ledgerapi/internal/version"
)

var cfg *config.Config

func main() {
	// Load configuration
	cfg = config.Load()
	log.Printf("Starting %s on %s", version.Name, cfg.ListenAddr)
	if cfg.AllowAnonymous {
		log.Printf("Warning: anonymous access is enabled")
	}

	r := SetupRouter()

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}

// SetupRouter builds the chi router with middleware and all routes
func SetupRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", auth.SharedSecretHeader, auth.GatewaySecretHeader},
		MaxAge:         300,
	}))

	// Liveness and version info, outside the gateway-trust boundary
	r.Get("/health", handleHealth)
	r.Get("/version", handleVersion)

	// Business routes behind the gateway-trust check
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg))
		bills.RegisterRoutes(r)
		ledger.RegisterRoutes(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	apphttp.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"mode":    "public",
		"version": version.Version,
	})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	apphttp.WriteJSON(w, http.StatusOK, version.Get())
}
