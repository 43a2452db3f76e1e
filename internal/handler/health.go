package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker
type HealthCheckFunc func(ctx context.Context) error

// CheckHealth calls f
func (f HealthCheckFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports whether the service can start sessions
// @Summary Readiness check
// @Description Returns OK if every dependency check passes (default datasets readable)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check.CheckHealth(ctx); err != nil {
				slog.Error("Readiness check failed", "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unavailable",
					Message: err.Error(),
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
