package ratelimit

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, endpoint, status string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, endpoint, status) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, endpoint, status string) bool {
	var gotEndpoint, gotStatus string
	for _, l := range m.GetLabel() {
		switch l.GetName() {
		case "endpoint":
			gotEndpoint = l.GetValue()
		case "status":
			gotStatus = l.GetValue()
		}
	}
	return gotEndpoint == endpoint && gotStatus == status
}

func TestPrometheusMetricsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.RecordAllowed(EndpointGenerate)
	m.RecordAllowed(EndpointGenerate)
	m.RecordDenied(EndpointGenerate)
	m.RecordFailOpen(EndpointEdit)
	m.RecordCheckDuration(EndpointGenerate, 2*time.Millisecond)

	tests := []struct {
		endpoint string
		status   string
		want     float64
	}{
		{EndpointGenerate, "allowed", 2},
		{EndpointGenerate, "denied", 1},
		{EndpointEdit, "fail_open", 1},
		{EndpointEdit, "denied", 0},
	}
	for _, tt := range tests {
		got := counterValue(t, reg, "rate_limit_requests_total", tt.endpoint, tt.status)
		if got != tt.want {
			t.Errorf("requests_total{endpoint=%q,status=%q} = %v, want %v", tt.endpoint, tt.status, got, tt.want)
		}
	}
}

func TestPrometheusMetricsThroughLimiter(t *testing.T) {
	reg := prometheus.NewRegistry()
	limiter := NewLimiter(testConfig(), NewMemoryStore(), LimiterOptions{
		Clock:   &MockClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
		Metrics: NewPrometheusMetrics(reg),
	})

	req := requestFromIP("203.0.113.7")
	in := CheckInput{Endpoint: EndpointGenerate}
	for i := 0; i < 3; i++ {
		limiter.CheckLimit(req.Context(), req, in)
	}

	if got := counterValue(t, reg, "rate_limit_requests_total", EndpointGenerate, "allowed"); got != 2 {
		t.Errorf("allowed = %v, want 2", got)
	}
	if got := counterValue(t, reg, "rate_limit_requests_total", EndpointGenerate, "denied"); got != 1 {
		t.Errorf("denied = %v, want 1", got)
	}
}
