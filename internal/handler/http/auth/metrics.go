package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts bearer token checks by result and failure reason.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Bearer token checks by result",
		},
		[]string{"result", "reason"}, // result: success | failure
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Authorization check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	tokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of tokens issued",
		},
	)
)

// RecordAuthSuccess records an accepted token.
func RecordAuthSuccess() {
	authRequestsTotal.WithLabelValues("success", "").Inc()
}

// RecordAuthFailure records a rejected request with a short reason label.
func RecordAuthFailure(reason string) {
	authRequestsTotal.WithLabelValues("failure", reason).Inc()
}

// RecordAuthzCheckDuration records authorization check duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}
