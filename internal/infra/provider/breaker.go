package provider

import (
	"context"
	"log/slog"

	"newsfox/internal/domain/entity"
	"newsfox/internal/resilience/circuitbreaker"
	"newsfox/internal/usecase/headline"
)

// Breaker wraps a provider with a circuit breaker. While the breaker is open
// calls fail fast with a ProviderError of kind "unavailable".
type Breaker struct {
	next headline.Provider
	cb   *circuitbreaker.CircuitBreaker
}

// WithBreaker decorates next with the provider circuit breaker settings.
func WithBreaker(next headline.Provider) *Breaker {
	return &Breaker{
		next: next,
		cb:   circuitbreaker.New(circuitbreaker.ProviderConfig(next.Name())),
	}
}

// Name returns the wrapped provider's name.
func (b *Breaker) Name() string { return b.next.Name() }

// FetchPage executes the wrapped call through the breaker.
func (b *Breaker) FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.FetchPage(ctx, category, page, pageSize)
	})
	if err != nil {
		if circuitbreaker.IsOpenError(err) {
			slog.WarnContext(ctx, "provider circuit breaker open, request rejected",
				slog.String("provider", b.Name()),
				slog.String("state", b.cb.State().String()))
			return nil, &entity.ProviderError{
				Provider: b.Name(),
				Kind:     entity.ProviderErrUnavailable,
				Message:  "circuit breaker open",
				Err:      err,
			}
		}
		return nil, err
	}
	return res.(*entity.Page), nil
}
