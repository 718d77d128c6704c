package headline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newsfox/internal/domain/entity"
	"newsfox/internal/resilience/retry"
)

// Service serves single headline pages to HTTP clients and warms caches.
type Service struct {
	Provider Provider
	Retry    retry.Config
	Timeout  time.Duration
}

// NewService creates a Service with provider-tuned retry and DefaultTimeout.
func NewService(p Provider) *Service {
	return &Service{Provider: p, Retry: retry.ProviderConfig(), Timeout: DefaultTimeout}
}

// Page returns page number page of category. Retryable provider failures are
// retried with backoff; the final failure is returned as *entity.ProviderError.
func (s *Service) Page(ctx context.Context, category string, page int) (*entity.Page, error) {
	cat, err := entity.ParseCategory(category)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	if page < 1 {
		return nil, ErrInvalidPage
	}

	f := Fetcher{Provider: s.Provider, Timeout: s.Timeout}
	req := Request{Category: cat, Page: page, PageSize: entity.PageSize}

	var res Result
	err = retry.WithBackoff(ctx, s.Retry, func() error {
		res = f.Fetch(ctx, req)
		return res.Err
	})
	if err != nil {
		if res.Err != nil {
			return nil, res.Err
		}
		return nil, fmt.Errorf("page: %w", err)
	}
	return res.Page, nil
}

// Warm fetches page 1 of every category with at most parallelism concurrent
// calls, bypassing cached entries so caching providers refresh them.
// It returns the number of categories that failed.
func (s *Service) Warm(ctx context.Context, categories []entity.Category, parallelism int) (failed int, err error) {
	if parallelism < 1 {
		parallelism = 1
	}
	ctx = WithCacheBypass(ctx)
	f := Fetcher{Provider: s.Provider, Timeout: s.Timeout}

	results := make([]error, len(categories))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i, cat := range categories {
		eg.Go(func() error {
			err := retry.WithBackoff(egCtx, s.Retry, func() error {
				return f.Fetch(egCtx, Request{Category: cat, Page: 1, PageSize: entity.PageSize}).Err
			})
			if err != nil {
				slog.Warn("cache warm failed",
					slog.String("category", cat.String()),
					slog.Any("error", err))
			}
			results[i] = err
			// 1カテゴリの失敗で他を止めない
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, fmt.Errorf("warm: %w", err)
	}
	for _, e := range results {
		if e != nil {
			failed++
		}
	}
	if ctx.Err() != nil {
		return failed, ctx.Err()
	}
	return failed, nil
}
