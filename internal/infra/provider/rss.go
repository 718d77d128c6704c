package provider

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"newsfox/internal/common/pagination"
	"newsfox/internal/config"
	"newsfox/internal/domain/entity"
)

// maxParallelFeeds bounds concurrent feed downloads per category.
const maxParallelFeeds = 4

// RSS serves headlines from the RSS/Atom feeds configured per category.
// Feeds are merged, de-duplicated by URL, sorted newest first and paged
// locally; TotalAvailable is the merged item count.
type RSS struct {
	cfg config.ProviderConfig
	t   *transport
}

// NewRSS creates an RSS adapter. client must not be nil.
func NewRSS(cfg config.ProviderConfig, client *http.Client) *RSS {
	return &RSS{
		cfg: cfg,
		t: &transport{
			name:    config.ProviderRSS,
			client:  client,
			limiter: NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		},
	}
}

// Name returns the provider name.
func (r *RSS) Name() string { return config.ProviderRSS }

// FetchPage downloads every feed for category and returns the requested slice.
// It fails only when no feed could be read.
func (r *RSS) FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error) {
	if err := validateRequest(r.Name(), category, page, pageSize); err != nil {
		return nil, err
	}
	feeds := r.cfg.FeedsFor(category)
	if len(feeds) == 0 {
		return nil, r.t.fail(entity.ProviderErrInvalidRequest, 0, "no feeds configured for "+category.String(), nil)
	}

	// feed毎に格納し、設定順でマージする
	results := make([][]entity.Article, len(feeds))
	errs := make([]error, len(feeds))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelFeeds)
	for i, feedURL := range feeds {
		eg.Go(func() error {
			items, err := r.fetchFeed(egCtx, feedURL)
			if err != nil {
				errs[i] = err
				slog.WarnContext(ctx, "rss feed failed",
					slog.String("category", category.String()),
					slog.String("feed", feedURL),
					slog.Any("error", err))
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, r.t.fail(entity.ProviderErrNetwork, 0, "", err)
	}
	var merged []entity.Article
	failed := 0
	for i := range feeds {
		if errs[i] != nil {
			failed++
			continue
		}
		merged = append(merged, results[i]...)
	}
	if failed == len(feeds) {
		return nil, errs[0]
	}

	merged = dedupeByURL(merged)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	out := &entity.Page{TotalAvailable: len(merged), PageNumber: page, Articles: []entity.Article{}}
	start, end := pagination.Window(page, pageSize, len(merged))
	out.Articles = append(out.Articles, merged[start:end]...)
	return out, nil
}

func (r *RSS) fetchFeed(ctx context.Context, feedURL string) ([]entity.Article, error) {
	header := http.Header{}
	header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	status, body, err := r.t.get(ctx, feedURL, header)
	if err != nil {
		return nil, err
	}
	if nonOK(status) != 0 {
		return nil, r.t.fail(entity.ProviderErrStatus, status, feedURL, nil)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, r.t.fail(entity.ProviderErrShape, 0, "not a feed: "+feedURL, err)
		}
		return nil, r.t.fail(entity.ProviderErrDecode, 0, feedURL, err)
	}

	out := make([]entity.Article, 0, len(feed.Items))
	for _, it := range feed.Items {
		art, ok := normalize(entity.Article{
			Title:       it.Title,
			Description: it.Description,
			URL:         it.Link,
			ImageURL:    itemImage(it),
			PublishedAt: itemTime(it),
			Author:      itemAuthor(it),
			SourceName:  feed.Title,
		})
		if ok {
			out = append(out, art)
		}
	}
	return out, nil
}

func itemTime(it *gofeed.Item) time.Time {
	switch {
	case it.PublishedParsed != nil:
		return it.PublishedParsed.UTC()
	case it.UpdatedParsed != nil:
		return it.UpdatedParsed.UTC()
	}
	return time.Time{}
}

func itemAuthor(it *gofeed.Item) *string {
	if it.Author != nil && it.Author.Name != "" {
		return optional(it.Author.Name)
	}
	for _, a := range it.Authors {
		if a != nil && a.Name != "" {
			return optional(a.Name)
		}
	}
	return nil
}

func itemImage(it *gofeed.Item) *string {
	if it.Image != nil && it.Image.URL != "" {
		return optional(it.Image.URL)
	}
	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return optional(enc.URL)
		}
	}
	return nil
}

// dedupeByURL keeps the first occurrence of each article URL.
func dedupeByURL(in []entity.Article) []entity.Article {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, a := range in {
		if _, ok := seen[a.URL]; ok {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}
