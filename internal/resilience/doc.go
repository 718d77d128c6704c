// Package resilience provides reliability and fault tolerance patterns for outbound
// headline provider calls.
//
// The package supports:
//   - Circuit breakers around provider adapters
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ProviderConfig("gnews"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return provider.FetchPage(ctx, category, page, size)
//	})
//
//	err := retry.WithBackoff(ctx, retry.ProviderConfig(), func() error {
//	    return performOperation()
//	})
package resilience
