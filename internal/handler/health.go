package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/josh-kwaku/palpay/internal/logging"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// Probe is one dependency checked by the readiness endpoint.
type Probe struct {
	Name  string
	Check pinger
}

type HealthHandler struct {
	version string
	probes  []Probe
}

func NewHealthHandler(version string, probes ...Probe) *HealthHandler {
	return &HealthHandler{version: version, probes: probes}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness reports 503 when any probe fails within readinessTimeout.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status, httpStatus := "ok", http.StatusOK
	checks := make(map[string]string, len(h.probes))
	for _, p := range h.probes {
		if err := p.Check.Ping(ctx); err != nil {
			logging.FromContext(r.Context()).Warn("readiness probe failed", "probe", p.Name, "error", err)
			checks[p.Name] = "down"
			status, httpStatus = "down", http.StatusServiceUnavailable
			continue
		}
		checks[p.Name] = "ok"
	}

	RespondJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}
