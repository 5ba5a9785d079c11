package ratelimit

import "time"

// Metrics defines the interface for recording rate limiting metrics.
//
// Implementations can use Prometheus or custom metrics systems; NoopMetrics
// disables collection entirely.
type Metrics interface {
	// RecordAllowed records a check that permitted the request.
	RecordAllowed(endpoint string)

	// RecordDenied records a check that rejected the request.
	RecordDenied(endpoint string)

	// RecordFailOpen records a check that permitted the request because
	// the store failed.
	RecordFailOpen(endpoint string)

	// RecordCheckDuration records how long a limit check took.
	RecordCheckDuration(endpoint string, d time.Duration)
}

// NoopMetrics is a Metrics implementation that discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordAllowed(string)                      {}
func (NoopMetrics) RecordDenied(string)                       {}
func (NoopMetrics) RecordFailOpen(string)                     {}
func (NoopMetrics) RecordCheckDuration(string, time.Duration) {}
