package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/osse101/habitquest/internal/database"
	"github.com/osse101/habitquest/internal/logger"
)

const readinessTimeout = 2 * time.Second

// Health status values
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealthz reports that the process is serving
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports whether the progression store is reachable.
// Every write path holds a row lock in postgres, so without it no request can succeed.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		start := time.Now()
		if err := dbPool.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error("Readiness check failed", "error", err, "elapsed", time.Since(start))
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: StatusUnavailable,
				Checks: map[string]string{"database": pingFailure(err)},
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{
			Status: StatusOK,
			Checks: map[string]string{"database": StatusOK},
		})
	}
}

// pingFailure describes a failed ping without leaking driver detail
func pingFailure(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "unreachable"
}
