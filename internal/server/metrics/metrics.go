package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Range request outcomes
const (
	OutcomeServed  = "served"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
	CacheHit       = "hit"
	CacheMiss      = "miss"
)

// Metrics holds range server metrics
type Metrics struct {
	RangeRequests *prometheus.CounterVec
	RangeLatency  prometheus.Histogram
	RangeEntries  prometheus.Histogram
	CacheLookups  *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
}

// NewMetrics creates and registers range server metrics in reg
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RangeRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "range",
			Name:      "requests_total",
			Help:      "Total number of range requests by outcome",
		}, []string{"outcome"}),
		RangeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "range",
			Name:      "duration_seconds",
			Help:      "Time spent serving range requests",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		RangeEntries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "range",
			Name:      "entries",
			Help:      "Number of entries returned per range, padding excluded",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "range",
			Name:      "cache_lookups_total",
			Help:      "Range cache lookups by result",
		}, []string{"result"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by status class",
		}, []string{"code"}),
	}
}
