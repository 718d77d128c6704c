package headline

import (
	"context"
	"errors"
	"time"

	"newsfox/internal/domain/entity"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// Fetcher executes Requests against a Provider.
type Fetcher struct {
	Provider Provider
	Timeout  time.Duration
}

// Fetch executes req with DefaultTimeout.
func Fetch(ctx context.Context, p Provider, req Request) Result {
	return Fetcher{Provider: p, Timeout: DefaultTimeout}.Fetch(ctx, req)
}

// Fetch executes req. The returned Result always carries req so it can be
// matched against the issuing State; Err is always a *entity.ProviderError.
func (f Fetcher) Fetch(ctx context.Context, req Request) Result {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, err := f.Provider.FetchPage(ctx, req.Category, req.Page, req.PageSize)
	if err != nil {
		return Result{Request: req, Err: asProviderError(f.Provider.Name(), err)}
	}
	if page == nil {
		return Result{Request: req, Err: &entity.ProviderError{
			Provider: f.Provider.Name(),
			Kind:     entity.ProviderErrShape,
			Message:  "no page returned",
		}}
	}
	return Result{Request: req, Page: page}
}

func asProviderError(name string, err error) error {
	if pe, ok := entity.AsProviderError(err); ok {
		return pe
	}
	kind := entity.ProviderErrUpstream
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = entity.ProviderErrNetwork
	}
	return &entity.ProviderError{Provider: name, Kind: kind, Err: err}
}
