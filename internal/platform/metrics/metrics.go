package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	CyclesTotal       prometheus.Counter
	CycleDuration     prometheus.Histogram
	SourceFailures    *prometheus.CounterVec
	QueueItemsCreated prometheus.Counter
	EnqueueFailures   prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		CyclesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transferguard_cycles_total",
			Help: "Total number of evaluation cycles run",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transferguard_cycle_duration_seconds",
			Help:    "Wall time of one evaluation cycle",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "transferguard_source_failures_total",
			Help: "Snapshot fetch failures by source",
		}, []string{"source"}),
		QueueItemsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transferguard_queue_items_created_total",
			Help: "Review queue items created by the reconciler",
		}),
		EnqueueFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transferguard_enqueue_failures_total",
			Help: "Review queue item creations that failed",
		}),
	}
}

// ObserveCycle records one completed evaluation cycle.
func (m *Metrics) ObserveCycle(d time.Duration) {
	m.CyclesTotal.Inc()
	m.CycleDuration.Observe(d.Seconds())
}

// IncSourceFailure records one failed snapshot fetch for the named source.
func (m *Metrics) IncSourceFailure(source string) {
	m.SourceFailures.WithLabelValues(source).Inc()
}
