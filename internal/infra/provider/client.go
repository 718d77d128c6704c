// Package provider contains the headline provider adapters (GNews, NewsAPI and
// RSS feeds) and the decorators that add circuit breaking and instrumentation.
// Every adapter normalizes its upstream schema into entity.Page and reports
// failures as *entity.ProviderError.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsfox/internal/domain/entity"
)

const (
	// maxBodyBytes bounds provider response bodies.
	maxBodyBytes = 5 << 20
	userAgent    = "NewsFoxBot/1.0"
)

// NewHTTPClient returns the shared outbound client. Per-request deadlines come
// from the caller's context; timeout is a hard upper bound.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}

// transport performs throttled GET requests and classifies transport failures.
type transport struct {
	name    string
	client  *http.Client
	limiter *RateLimiter
}

// get returns the status and body of a GET to rawURL. Only transport-level
// failures are returned as errors; non-2xx statuses are left to the adapter.
func (t *transport) get(ctx context.Context, rawURL string, header http.Header) (int, []byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, nil, t.fail(entity.ProviderErrNetwork, 0, "rate limiter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, t.fail(entity.ProviderErrInvalidRequest, 0, "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		req.Header[k] = vs
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, t.fail(entity.ProviderErrNetwork, 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return 0, nil, t.fail(entity.ProviderErrNetwork, resp.StatusCode, "read body", err)
	}
	if len(body) > maxBodyBytes {
		return 0, nil, t.fail(entity.ProviderErrDecode, resp.StatusCode, fmt.Sprintf("body exceeds %d bytes", maxBodyBytes), nil)
	}
	return resp.StatusCode, body, nil
}

func (t *transport) fail(kind entity.ProviderErrorKind, status int, msg string, err error) *entity.ProviderError {
	// APIキーを含むURLをエラーに残さない
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	return &entity.ProviderError{Provider: t.name, Kind: kind, StatusCode: status, Message: msg, Err: err}
}

// validateRequest rejects arguments no provider can serve.
func validateRequest(name string, c entity.Category, page, pageSize int) error {
	switch {
	case !c.IsValid():
		return &entity.ProviderError{Provider: name, Kind: entity.ProviderErrInvalidRequest, Message: fmt.Sprintf("unknown category %q", c)}
	case page < 1:
		return &entity.ProviderError{Provider: name, Kind: entity.ProviderErrInvalidRequest, Message: "page must be >= 1"}
	case pageSize < 1:
		return &entity.ProviderError{Provider: name, Kind: entity.ProviderErrInvalidRequest, Message: "page size must be >= 1"}
	}
	return nil
}
