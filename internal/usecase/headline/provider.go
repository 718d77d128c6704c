// Package headline implements incremental headline pagination: a value-typed
// state machine that accumulates provider pages per category, the fetch step
// that executes one page request, and a server-side page service.
package headline

import (
	"context"

	"newsfox/internal/domain/entity"
)

// Provider fetches one page of headlines for a category.
// Implementations return *entity.ProviderError on every failure and never retry.
type Provider interface {
	Name() string
	FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error)
}

type bypassKey struct{}

// WithCacheBypass marks ctx so caching providers skip lookups and refresh their entry.
func WithCacheBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

// CacheBypass reports whether ctx was marked by WithCacheBypass.
func CacheBypass(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}
