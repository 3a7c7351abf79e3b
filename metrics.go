package astar

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultFound    = "found"
	resultNotFound = "not_found"
	resultLimit    = "limit"
	resultCanceled = "canceled"
)

// Metrics holds Prometheus collectors for path searches.
// A nil *Metrics records nothing.
type Metrics struct {
	searches  *prometheus.CounterVec
	expanded  prometheus.Histogram
	durations prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// searches counts finished searches by result
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridastar_searches_total",
			Help: "Total path searches by result",
		}, []string{"result"}),
		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridastar_expanded_nodes",
			Help:    "Nodes expanded per path search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
		}),
		durations: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridastar_search_duration_seconds",
			Help:    "Path search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
	}
}

func (m *Metrics) observe(result string, expanded int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(result).Inc()
	m.expanded.Observe(float64(expanded))
	m.durations.Observe(elapsed.Seconds())
}
