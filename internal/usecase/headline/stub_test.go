package headline_test

import (
	"context"
	"fmt"
	"sync"

	"newsfox/internal/domain/entity"
)

/*──────────────────── スタブ ────────────────────*/

// stubProvider serves total synthetic articles per category, PageSize at a time.
type stubProvider struct {
	mu      sync.Mutex
	total   int
	fail    map[int]error // page -> error
	calls   []entity.Category
	block   bool
	failN   int // fail the first failN calls with failErr
	failErr error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchPage(ctx context.Context, c entity.Category, page, size int) (*entity.Page, error) {
	p.mu.Lock()
	p.calls = append(p.calls, c)
	n := len(p.calls)
	p.mu.Unlock()

	if p.block {
		<-ctx.Done()
		return nil, &entity.ProviderError{Provider: "stub", Kind: entity.ProviderErrNetwork, Err: ctx.Err()}
	}
	if n <= p.failN {
		return nil, p.failErr
	}
	if err, ok := p.fail[page]; ok {
		return nil, err
	}
	return makePage(c, page, size, p.total), nil
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func makePage(c entity.Category, page, size, total int) *entity.Page {
	start := (page - 1) * size
	out := &entity.Page{TotalAvailable: total, PageNumber: page}
	for i := start; i < start+size && i < total; i++ {
		out.Articles = append(out.Articles, entity.Article{
			Title:      fmt.Sprintf("%s #%d", c, i),
			URL:        fmt.Sprintf("https://example.com/%s/%d", c, i),
			SourceName: "Stub",
		})
	}
	return out
}

func statusErr(code int) error {
	return &entity.ProviderError{Provider: "stub", Kind: entity.ProviderErrStatus, StatusCode: code}
}
