package http

import (
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"feedrank/internal/featureflag"
	"feedrank/internal/handler/http/respond"
	"feedrank/internal/resilience/circuitbreaker"
)

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the state of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Sweeper reports the size of a maintained cache.
type Sweeper interface {
	Len() int
}

// HealthHandler reports the operational state of the feed pipeline: circuit
// breaker state, cache sizes, and whether the kill switch is engaged. An open
// breaker or an active kill switch is a degraded state, not a failure; the
// service still serves fallback feeds.
type HealthHandler struct {
	Breaker *circuitbreaker.CircuitBreaker
	Flags   *featureflag.Gate
	Caches  map[string]Sweeper
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	status := "healthy"

	if h.Breaker != nil {
		breakerCheck := CheckStatus{Status: "healthy", Details: map[string]any{
			"state": h.Breaker.State().String(),
		}}
		if h.Breaker.State() != gobreaker.StateClosed {
			breakerCheck.Status = "degraded"
			breakerCheck.Message = "ranking dependency path is unhealthy, serving fallback feeds"
			status = "degraded"
		}
		checks["circuit_breaker"] = breakerCheck
	}

	if h.Flags != nil && h.Flags.KillSwitchActive() {
		checks["personalization"] = CheckStatus{
			Status:  "degraded",
			Message: "kill switch engaged, personalization disabled",
		}
		status = "degraded"
	}

	if len(h.Caches) > 0 {
		sizes := make(map[string]any, len(h.Caches))
		for name, c := range h.Caches {
			sizes[name] = c.Len()
		}
		checks["caches"] = CheckStatus{Status: "healthy", Details: sizes}
	}

	// Degraded is a warning, not an outage: the endpoint stays 200 so
	// orchestrators do not restart a working fallback server.
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// ReadyHandler answers readiness probes once the stores are seeded.
type ReadyHandler struct {
	Ready func() bool
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil && !h.Ready() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (h LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
