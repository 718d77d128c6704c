// Package metrics provides Prometheus metrics for the headline and favorites domains.
//
// This package centralizes application metrics including:
//   - Provider calls (count and latency by provider and outcome)
//   - Page cache hits and misses
//   - Favorite creation outcomes
//   - Cache warm runs
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint. HTTP request metrics live in the
// handler/http package.
//
// Example usage:
//
//	start := time.Now()
//	page, err := p.FetchPage(ctx, category, 1, entity.PageSize)
//	metrics.RecordProviderRequest("gnews", string(category), err, time.Since(start))
package metrics
