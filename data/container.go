// Package data provides thread-safe storage for the upstream probe status.
// The container uses atomic values so the health endpoint can read the latest
// probe while the scheduler records a new one.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/medscape-interactions/interfaces"
	"github.com/giygas/medscape-interactions/logging"
)

// Compile-time check to ensure StatusContainer implements StatusStore
var _ interfaces.StatusStore = (*StatusContainer)(nil)

// StatusContainer holds the latest probe outcome with atomic access
type StatusContainer struct {
	lastProbe           atomic.Value // interfaces.ProbeResult
	hasProbe            atomic.Bool
	consecutiveFailures atomic.Int64
	totalProbes         atomic.Int64
	serverStartTime     atomic.Value // time.Time
}

// NewStatusContainer creates a container with no recorded probe
func NewStatusContainer() *StatusContainer {
	sc := &StatusContainer{}
	sc.lastProbe.Store(interfaces.ProbeResult{})
	sc.serverStartTime.Store(time.Time{})
	return sc
}

// RecordProbe stores a probe result and updates the failure streak
func (sc *StatusContainer) RecordProbe(result interfaces.ProbeResult) {
	sc.lastProbe.Store(result)
	sc.hasProbe.Store(true)
	sc.totalProbes.Add(1)

	if result.OK {
		sc.consecutiveFailures.Store(0)
		return
	}
	sc.consecutiveFailures.Add(1)
}

// LastProbe returns the latest probe and whether one has been recorded
func (sc *StatusContainer) LastProbe() (interfaces.ProbeResult, bool) {
	if !sc.hasProbe.Load() {
		return interfaces.ProbeResult{}, false
	}

	if v := sc.lastProbe.Load(); v != nil {
		if result, ok := v.(interfaces.ProbeResult); ok {
			return result, true
		}
	}

	logging.Warn("Could not get the last probe value")
	return interfaces.ProbeResult{}, false
}

// ConsecutiveFailures returns how many probes failed in a row
func (sc *StatusContainer) ConsecutiveFailures() int {
	return int(sc.consecutiveFailures.Load())
}

// TotalProbes returns how many probes were recorded since start
func (sc *StatusContainer) TotalProbes() int {
	return int(sc.totalProbes.Load())
}

// SetServerStartTime sets the server start time
func (sc *StatusContainer) SetServerStartTime(startTime time.Time) {
	sc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (sc *StatusContainer) GetServerStartTime() time.Time {
	if v := sc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
