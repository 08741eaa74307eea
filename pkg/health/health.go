// Package health provides Kubernetes-style liveness and readiness probe
// endpoints. Checks run on demand when a probe is requested, each bounded by
// its own timeout, so probe responses always reflect the current state of the
// dependency rather than a cached result.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc is a health check function. It should return nil if the checked
// component is healthy, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

// check pairs a named CheckFunc with its execution timeout.
type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready atomic.Bool

	// mu protects the check slices. Registration happens during startup;
	// probes take a read lock and run the checks without holding it.
	mu              sync.RWMutex
	livenessChecks  []check
	readinessChecks []check
}

// New creates a new Health instance. The service starts in a not-ready state;
// call SetReady(true) once initialization has finished.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a liveness check. Liveness checks determine
// whether the process is alive and functioning, e.g. goroutine count.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.livenessChecks = append(h.livenessChecks, check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a readiness check. Readiness checks determine
// whether the service can accept traffic, e.g. database or cache connectivity.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readinessChecks = append(h.readinessChecks, check{name: name, timeout: timeout, fn: fn})
}

// SetReady sets the manual readiness gate. It is typically called with true
// after initialization completes, and with false during graceful shutdown so
// load balancers stop routing new traffic here.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service would currently pass a readiness probe:
// the manual gate is open and all readiness checks succeed.
func (h *Health) IsReady(ctx context.Context) bool {
	if !h.ready.Load() {
		return false
	}
	return len(h.runChecks(ctx, h.snapshot(&h.readinessChecks))) == 0
}

// LiveEndpoint is an http.HandlerFunc for the /livez endpoint.
// It returns 200 with {"status":"ok"} if all liveness checks pass,
// or 503 with {"status":"unhealthy","checks":{...}} listing failures.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	failures := h.runChecks(r.Context(), h.snapshot(&h.livenessChecks))
	writeResponse(w, failures)
}

// ReadyEndpoint is an http.HandlerFunc for the /readyz endpoint.
// It returns 200 with {"status":"ok"} if the service is marked ready AND all
// readiness checks pass. Otherwise it returns 503 with details.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	failures := h.runChecks(r.Context(), h.snapshot(&h.readinessChecks))
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	writeResponse(w, failures)
}

// snapshot copies a check slice under the read lock.
func (h *Health) snapshot(src *[]check) []check {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]check, len(*src))
	copy(out, *src)
	return out
}

// runChecks executes each check with its timeout and returns a map of check
// name to error message for every failure.
func (h *Health) runChecks(ctx context.Context, checks []check) map[string]string {
	failures := make(map[string]string)
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()
		if err != nil {
			failures[c.name] = err.Error()
		}
	}
	return failures
}

// statusResponse is the JSON response body for health endpoints.
type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeResponse(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	status := http.StatusOK

	if len(failures) > 0 {
		resp.Status = "unhealthy"
		resp.Checks = failures
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
