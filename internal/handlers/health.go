package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/benvon/quest-planner/internal/storage"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	store   storage.Store
	backend string
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(store storage.Store, backend string) *HealthChecker {
	if backend == "" {
		backend = storage.BackendMemory
	}
	return &HealthChecker{store: store, backend: backend}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint. ?mode=extended also pings storage.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	statusCode := http.StatusOK

	if r.URL.Query().Get("mode") == "extended" {
		checks := make(map[string]string)
		if err := h.checkStorage(r.Context()); err != nil {
			response.Status = "unhealthy"
			checks["storage"] = "unhealthy: " + err.Error()
			statusCode = http.StatusServiceUnavailable
		} else {
			checks["storage"] = "healthy"
		}
		checks["backend"] = h.backend
		response.Checks = checks
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

func (h *HealthChecker) checkStorage(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return h.store.Ping(ctx)
}
