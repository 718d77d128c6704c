package metrics

import (
	"errors"
	"time"

	"newsfox/internal/domain/entity"
)

// RecordProviderRequest records the outcome and latency of one provider call.
// The outcome label is "success" or the ProviderError kind ("error" for untyped failures).
func RecordProviderRequest(provider, category string, err error, duration time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, category, outcome(err)).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordArticlesReturned adds count to the provider's returned-articles counter.
func RecordArticlesReturned(provider string, count int) {
	if count > 0 {
		ProviderArticlesReturned.WithLabelValues(provider).Add(float64(count))
	}
}

// RecordCacheLookup records a page cache hit, miss or error.
func RecordCacheLookup(result string) {
	PageCacheLookups.WithLabelValues(result).Inc()
}

// RecordFavoriteAdd records the result of a favorite add request.
func RecordFavoriteAdd(result string) {
	FavoritesAddedTotal.WithLabelValues(result).Inc()
}

// RecordUserCreated increments the created-users counter.
func RecordUserCreated() {
	UsersCreatedTotal.Inc()
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var pe *entity.ProviderError
	if errors.As(err, &pe) {
		return string(pe.Kind)
	}
	return "error"
}
