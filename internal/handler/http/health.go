package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

// HealthCheck pings one backing dependency
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Healthz reports "up" or the failure of each dependency; any failure yields 503
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		response.Unavailable(w, status)
		return
	}
	response.Success(w, status)
}
