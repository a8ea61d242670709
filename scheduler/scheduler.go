// Package scheduler runs the periodic upstream reachability probe used by the
// health endpoint in serve mode.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/giygas/medscape-interactions/interfaces"
	"github.com/giygas/medscape-interactions/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler resolves a known medication on an interval and records the outcome
type Scheduler struct {
	statusStore interfaces.StatusStore
	resolver    interfaces.IdentifierResolver
	interval    time.Duration
	medication  string
	scheduler   *gocron.Scheduler
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(statusStore interfaces.StatusStore, resolver interfaces.IdentifierResolver,
	interval time.Duration, medication string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		statusStore: statusStore,
		resolver:    resolver,
		interval:    interval,
		medication:  medication,
		scheduler:   gocron.NewScheduler(time.Local),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start schedules the probe, running it once immediately
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("probe interval must be positive, got: %s", s.interval)
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.probe)
	if err != nil {
		logging.Error("Failed to schedule upstream probe", "error", err)
		return fmt.Errorf("failed to schedule upstream probe: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Upstream probe scheduled", "interval", s.interval.String(), "medication", s.medication)

	return nil
}

// Stop stops the scheduler and cancels an in-flight probe
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
}

// probe performs one lookup against the upstream and stores the result
func (s *Scheduler) probe() {
	start := time.Now()
	id, err := s.resolver.ResolveIdentifier(s.ctx, s.medication)
	elapsed := time.Since(start)

	result := interfaces.ProbeResult{
		At:         start,
		Duration:   elapsed,
		OK:         err == nil && id != "",
		Identifier: id,
	}

	switch {
	case err != nil:
		result.Error = err.Error()
	case id == "":
		result.Error = "empty identifier"
	}

	s.statusStore.RecordProbe(result)

	if !result.OK {
		logging.Warn("Upstream probe failed",
			"medication", s.medication,
			"error", result.Error,
			"consecutive_failures", s.statusStore.ConsecutiveFailures(),
		)
		return
	}

	logging.Debug("Upstream probe completed", "medication", s.medication, "identifier", id, "duration", elapsed.String())
}
