// Handler for miscellaneous endpoints such as health check

package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Timestamp: time.Now(),
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
