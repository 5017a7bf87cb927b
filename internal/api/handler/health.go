package handler

import (
	"net/http"

	"github.com/Ronak8595/Backend/internal/api/response"
	"github.com/Ronak8595/Backend/internal/repository/mongodb"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"}, "healthy")
}

// ReadyCheck returns readiness status including database connectivity
func ReadyCheck(db *mongodb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
		response.OK(w, map[string]string{"status": "ready"}, "ready")
	}
}
