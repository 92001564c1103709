package handler

import (
	"net/http"

	"github.com/yumyai/synbrowser/pkg/middle"
)

// NewRouter registers every API route and wraps the mux in the request id
// and logging middleware.
func NewRouter(dbctx *DBContext) http.Handler {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// API routes
	mux.HandleFunc("GET /api/v1/health", HealthCheck)
	mux.HandleFunc("GET /api/v1/species", dbctx.SpeciesHandler)
	mux.HandleFunc("GET /api/v1/blocks/{ref}/{comp}/{chr}", dbctx.BlocksHandler)
	mux.HandleFunc("GET /api/v1/genes/{ref}/{comp}/{chr}", dbctx.GenesHandler)
	mux.HandleFunc("GET /api/v1/qtls/{taxon}/{chr}", dbctx.QTLsHandler)
	mux.HandleFunc("GET /api/v1/chr-colors", dbctx.ChrColorsHandler)
	mux.HandleFunc("GET /api/v1/snapshot/{ref}/{comp}/{interval}", dbctx.SnapshotHandler)

	log := dbctx.logger()
	return middle.Chain(mux, middle.RequestIDMiddleware(log), middle.LoggingMiddleware(log))
}
