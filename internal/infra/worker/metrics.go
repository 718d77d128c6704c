package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"newsfox/internal/pkg/config"
)

// WorkerMetrics tracks configuration fallbacks and warm runs.
type WorkerMetrics struct {
	*config.ConfigMetrics

	WarmRunsTotal             *prometheus.CounterVec
	WarmDurationSeconds       prometheus.Histogram
	WarmCategoriesFailedTotal prometheus.Counter
	WarmLastSuccessTimestamp  prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with the default registry.
// Call it once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		WarmRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_warm_runs_total",
			Help: "Cache warm runs by status (success, partial, failure)",
		}, []string{"status"}),

		WarmDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_warm_duration_seconds",
			Help:    "Duration of one cache warm run",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),

		WarmCategoriesFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_warm_categories_failed_total",
			Help: "Categories whose page 1 could not be refreshed",
		}),

		WarmLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_warm_last_success_timestamp",
			Help: "Unix timestamp of the last run that refreshed every category",
		}),
	}
}

// RecordRun records one warm run. failed is the number of categories
// that could not be refreshed.
func (m *WorkerMetrics) RecordRun(failed int, err error, seconds float64) {
	m.WarmDurationSeconds.Observe(seconds)
	m.WarmCategoriesFailedTotal.Add(float64(failed))

	switch {
	case err != nil:
		m.WarmRunsTotal.WithLabelValues("failure").Inc()
	case failed > 0:
		m.WarmRunsTotal.WithLabelValues("partial").Inc()
	default:
		m.WarmRunsTotal.WithLabelValues("success").Inc()
		m.WarmLastSuccessTimestamp.SetToCurrentTime()
	}
}
