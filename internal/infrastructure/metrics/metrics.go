package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	transitions *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

// New registers the service metrics on reg. A nil registerer yields a
// Metrics whose methods are no-ops.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loanlink_workflow_transitions_total",
		Help: "Application workflow transition attempts by outcome.",
	}, []string{"transition", "outcome"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loanlink_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(transitions, httpLatency)
	return &Metrics{transitions: transitions, httpLatency: httpLatency}
}

func (m *Metrics) ObserveTransition(transition, outcome string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(transition), normalizeLabel(outcome)).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil || m.httpLatency == nil {
		return
	}
	m.httpLatency.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
