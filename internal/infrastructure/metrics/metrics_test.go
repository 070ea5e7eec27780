package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition("approve", "applied")
	m.ObserveTransition("approve", "applied")
	m.ObserveTransition("reject", "conflict")
	m.ObserveTransition("cancel", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("approve", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("reject", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("cancel", "unknown")))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest("GET", "/loans/:loan_id", 200, 15*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.httpLatency))
}

func TestNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("approve", "applied")
		m.ObserveRequest("GET", "/", 200, time.Millisecond)
		New(nil).ObserveTransition("", "")
	})
}
