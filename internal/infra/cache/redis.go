// Package cache provides the Redis-backed headline page cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"newsfox/internal/domain/entity"
	"newsfox/internal/observability/metrics"
	"newsfox/internal/usecase/headline"
)

// keyPrefix namespaces cache keys; bump the version when the encoding changes.
const keyPrefix = "newsfox:headlines:v1"

// Lookup results recorded in metrics.
const (
	resultHit    = "hit"
	resultMiss   = "miss"
	resultError  = "error"
	resultBypass = "bypass"
)

// Connect parses a redis:// URL and verifies the connection.
// A bare host:port is accepted as well.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.New("redis url is empty")
	}
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		opt = &redis.Options{Addr: rawURL}
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// PageCache caches successful provider pages in Redis for a fixed TTL.
// Failures are never cached. Redis errors degrade to a direct provider call.
type PageCache struct {
	next headline.Provider
	rdb  redis.Cmdable
	ttl  time.Duration
}

// WithPageCache decorates next. A non-positive ttl disables caching.
func WithPageCache(next headline.Provider, rdb redis.Cmdable, ttl time.Duration) headline.Provider {
	if rdb == nil || ttl <= 0 {
		return next
	}
	return &PageCache{next: next, rdb: rdb, ttl: ttl}
}

// Name returns the wrapped provider's name.
func (c *PageCache) Name() string { return c.next.Name() }

// Key returns the cache key of one provider page.
func Key(provider string, category entity.Category, page, pageSize int) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d", keyPrefix, provider, category, page, pageSize)
}

// FetchPage serves the page from Redis when present. Contexts marked with
// headline.WithCacheBypass skip the lookup and overwrite the entry.
func (c *PageCache) FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error) {
	key := Key(c.Name(), category, page, pageSize)

	if headline.CacheBypass(ctx) {
		metrics.RecordCacheLookup(resultBypass)
	} else if p, ok := c.get(ctx, key); ok {
		return p, nil
	}

	p, err := c.next.FetchPage(ctx, category, page, pageSize)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, p)
	return p, nil
}

func (c *PageCache) get(ctx context.Context, key string) (*entity.Page, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.RecordCacheLookup(resultMiss)
		return nil, false
	case err != nil:
		metrics.RecordCacheLookup(resultError)
		slog.WarnContext(ctx, "page cache lookup failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}

	var p entity.Page
	if err := json.Unmarshal(data, &p); err != nil {
		metrics.RecordCacheLookup(resultError)
		slog.WarnContext(ctx, "page cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	if p.Articles == nil {
		p.Articles = []entity.Article{}
	}
	metrics.RecordCacheLookup(resultHit)
	return &p, true
}

func (c *PageCache) set(ctx context.Context, key string, p *entity.Page) {
	data, err := json.Marshal(p)
	if err != nil {
		slog.WarnContext(ctx, "page cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "page cache store failed", slog.String("key", key), slog.Any("error", err))
	}
}
