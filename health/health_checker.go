// Package health derives the service health from the latest upstream probe.
package health

import (
	"net/http"
	"time"

	"github.com/giygas/medscape-interactions/interfaces"
)

const (
	StatusStarting = "starting"
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// staleAfter is the number of missed probe intervals after which a success no longer counts
const staleAfter = 3

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	statusStore   interfaces.StatusStore
	probeInterval time.Duration
	now           func() time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(statusStore interfaces.StatusStore, probeInterval time.Duration) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		statusStore:   statusStore,
		probeInterval: probeInterval,
		now:           time.Now,
	}
}

// HealthCheck returns the status label, response data and HTTP status code
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	probe, ok := h.statusStore.LastProbe()
	failures := h.statusStore.ConsecutiveFailures()

	data = map[string]any{
		"consecutive_failures": failures,
		"next_probe":           h.NextProbe().Format(time.RFC3339),
	}

	if !ok {
		return StatusStarting, data, http.StatusOK
	}

	probeAge := h.now().Sub(probe.At)
	data["last_probe"] = probe.At.Format(time.RFC3339)
	data["probe_age_seconds"] = int(probeAge.Seconds())
	data["probe_duration_ms"] = probe.Duration.Milliseconds()
	data["upstream_reachable"] = probe.OK
	if probe.Error != "" {
		data["last_error"] = probe.Error
	}

	switch {
	case !probe.OK:
		status = StatusDegraded
		httpStatus = http.StatusServiceUnavailable

	case h.probeInterval > 0 && probeAge > staleAfter*h.probeInterval:
		status = StatusDegraded
		httpStatus = http.StatusServiceUnavailable

	default:
		status = StatusHealthy
		httpStatus = http.StatusOK
	}

	return status, data, httpStatus
}

// NextProbe returns when the next upstream probe is expected
func (h *HealthCheckerImpl) NextProbe() time.Time {
	probe, ok := h.statusStore.LastProbe()
	if !ok {
		return h.now()
	}
	return probe.At.Add(h.probeInterval)
}
