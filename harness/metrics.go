package harness

import (
	"sync/atomic"
	"time"
)

// MetricsCollector observes every benchmark run of a session.
type MetricsCollector interface {
	// RecordRun is called after each subprocess run with its wall time
	// (including process start-up) and error.
	RecordRun(name string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

// RecordRun implements MetricsCollector.
func (NoopMetricsCollector) RecordRun(string, time.Duration, error) {}

// BasicMetricsCollector counts runs and their wall time in memory.
type BasicMetricsCollector struct {
	Runs       atomic.Int64
	Failures   atomic.Int64
	TotalNanos atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ string, duration time.Duration, err error) {
	b.Runs.Add(1)
	b.TotalNanos.Add(int64(duration))
	if err != nil {
		b.Failures.Add(1)
	}
}

// MetricsStats is a snapshot of a BasicMetricsCollector.
type MetricsStats struct {
	Runs      int64
	Failures  int64
	TotalTime time.Duration
}

// GetStats returns the current counters.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	return MetricsStats{
		Runs:      b.Runs.Load(),
		Failures:  b.Failures.Load(),
		TotalTime: time.Duration(b.TotalNanos.Load()),
	}
}
