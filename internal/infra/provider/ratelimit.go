package provider

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outbound provider requests with a token bucket.
// Free provider tiers allow only a handful of requests per second.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained and
// burst immediate requests. requestsPerSecond <= 0 disables throttling.
//
// Example:
//
//	limiter := NewRateLimiter(1.0, 3)  // 1 req/s with burst of 3
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	r := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		r = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(r, burst)}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}
