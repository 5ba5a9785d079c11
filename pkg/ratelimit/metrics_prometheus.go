package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
//
// All metrics live in a caller-supplied registry for better testability
// and isolation; pass prometheus.DefaultRegisterer in production.
type PrometheusMetrics struct {
	// requestsTotal tracks limit checks by endpoint and outcome.
	// Labels:
	//   - endpoint: policy bucket name ("generate", "edit", "authenticated")
	//   - status: "allowed", "denied", or "fail_open"
	requestsTotal *prometheus.CounterVec

	// checkDuration tracks the duration of limit checks.
	//
	// Buckets are optimized for fast checks (<5ms target); the upper
	// buckets exist to surface store latency problems.
	checkDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// its collectors with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_requests_total",
				Help: "Total rate limit checks by endpoint and outcome",
			},
			[]string{"endpoint", "status"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_limit_check_duration_seconds",
				Help:    "Rate limit check duration in seconds",
				Buckets: []float64{.0005, .001, .002, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"endpoint"},
		),
	}

	reg.MustRegister(m.requestsTotal, m.checkDuration)
	return m
}

// RecordAllowed records a check that permitted the request.
func (m *PrometheusMetrics) RecordAllowed(endpoint string) {
	m.requestsTotal.WithLabelValues(endpoint, "allowed").Inc()
}

// RecordDenied records a check that rejected the request.
func (m *PrometheusMetrics) RecordDenied(endpoint string) {
	m.requestsTotal.WithLabelValues(endpoint, "denied").Inc()
}

// RecordFailOpen records a fail-open allow caused by a store failure.
func (m *PrometheusMetrics) RecordFailOpen(endpoint string) {
	m.requestsTotal.WithLabelValues(endpoint, "fail_open").Inc()
}

// RecordCheckDuration records how long a limit check took.
func (m *PrometheusMetrics) RecordCheckDuration(endpoint string, d time.Duration) {
	m.checkDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}
