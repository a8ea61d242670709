package data

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/medscape-interactions/interfaces"
)

func TestNewStatusContainer(t *testing.T) {
	sc := NewStatusContainer()

	if _, ok := sc.LastProbe(); ok {
		t.Error("NewStatusContainer should have no recorded probe")
	}
	if sc.ConsecutiveFailures() != 0 {
		t.Errorf("Expected 0 failures, got %d", sc.ConsecutiveFailures())
	}
	if !sc.GetServerStartTime().IsZero() {
		t.Error("NewStatusContainer should have zero server start time")
	}
}

func TestRecordProbe(t *testing.T) {
	sc := NewStatusContainer()
	now := time.Now()

	sc.RecordProbe(interfaces.ProbeResult{At: now, OK: true, Identifier: "343033", Duration: 120 * time.Millisecond})

	result, ok := sc.LastProbe()
	if !ok {
		t.Fatal("Expected a recorded probe")
	}
	if result.Identifier != "343033" {
		t.Errorf("Expected identifier 343033, got %s", result.Identifier)
	}
	if !result.At.Equal(now) {
		t.Errorf("Expected probe time %v, got %v", now, result.At)
	}
	if sc.TotalProbes() != 1 {
		t.Errorf("Expected 1 probe, got %d", sc.TotalProbes())
	}
}

func TestConsecutiveFailures(t *testing.T) {
	sc := NewStatusContainer()

	sc.RecordProbe(interfaces.ProbeResult{OK: false, Error: "timeout"})
	sc.RecordProbe(interfaces.ProbeResult{OK: false, Error: "timeout"})
	if sc.ConsecutiveFailures() != 2 {
		t.Errorf("Expected 2 failures, got %d", sc.ConsecutiveFailures())
	}

	sc.RecordProbe(interfaces.ProbeResult{OK: true, Identifier: "1"})
	if sc.ConsecutiveFailures() != 0 {
		t.Errorf("Expected failure streak reset, got %d", sc.ConsecutiveFailures())
	}
	if sc.TotalProbes() != 3 {
		t.Errorf("Expected 3 probes, got %d", sc.TotalProbes())
	}
}

func TestServerStartTime(t *testing.T) {
	sc := NewStatusContainer()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	sc.SetServerStartTime(start)

	if !sc.GetServerStartTime().Equal(start) {
		t.Errorf("Expected %v, got %v", start, sc.GetServerStartTime())
	}
}

func TestConcurrentRecordAndRead(t *testing.T) {
	sc := NewStatusContainer()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			sc.RecordProbe(interfaces.ProbeResult{OK: i%2 == 0})
		}(i)
		go func() {
			defer wg.Done()
			sc.LastProbe()
			sc.ConsecutiveFailures()
		}()
	}
	wg.Wait()

	if sc.TotalProbes() != 50 {
		t.Errorf("Expected 50 probes, got %d", sc.TotalProbes())
	}
	if _, ok := sc.LastProbe(); !ok {
		t.Error("Expected a recorded probe after concurrent writes")
	}
}
