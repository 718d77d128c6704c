// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider metrics track outbound headline provider calls
var (
	// ProviderRequestsTotal counts provider calls by provider, category and outcome
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of headline provider requests",
		},
		[]string{"provider", "category", "outcome"},
	)

	// ProviderRequestDuration measures provider call latency
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Headline provider request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// ProviderArticlesReturned counts articles returned by providers
	ProviderArticlesReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_articles_returned_total",
			Help: "Total number of articles returned by headline providers",
		},
		[]string{"provider"},
	)
)

// Cache metrics
var (
	// PageCacheLookups counts page cache lookups by result (hit, miss, error)
	PageCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_lookups_total",
			Help: "Total number of headline page cache lookups",
		},
		[]string{"result"},
	)
)

// Favorite metrics
var (
	// FavoritesAddedTotal counts favorite add requests by result (created, existing, invalid, error)
	FavoritesAddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_added_total",
			Help: "Total number of favorite add requests",
		},
		[]string{"result"},
	)

	// UsersCreatedTotal counts user records created on first sight of an identity
	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total number of user records created",
		},
	)
)
