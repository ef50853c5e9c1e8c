package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Check is one named readiness dependency. Optional checks report their
// status but never fail readiness.
type Check struct {
	Name     string
	Checker  HealthChecker
	Optional bool
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. A check with a nil Checker
// is reported as "not configured".
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 5 * time.Second}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint. It performs no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It returns 200 only if every required dependency answers.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true

	for _, c := range h.checks {
		if c.Checker == nil {
			results[c.Name] = "not configured"
			continue
		}
		if err := c.Checker.Ping(ctx); err != nil {
			results[c.Name] = "error: " + err.Error()
			if !c.Optional {
				healthy = false
			}
			continue
		}
		results[c.Name] = "ok"
	}

	response := HealthResponse{Status: "ok", Checks: results}
	status := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}
