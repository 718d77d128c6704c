package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts headline page requests by status and page depth.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headline_page_requests_total",
			Help: "Total number of headline page requests",
		},
		[]string{"status", "page_range"},
	)

	// ErrorsTotal counts rejected or failed page requests by type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headline_page_errors_total",
			Help: "Total number of headline page errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a served page request.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRangeBucket(page)).Inc()
}

// RecordError records a failure type such as "invalid_page" or "provider".
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 1:
		return "1"
	case page <= 5:
		return "2-5"
	case page <= 10:
		return "6-10"
	default:
		return "10+"
	}
}
