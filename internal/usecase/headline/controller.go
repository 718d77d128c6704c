package headline

import (
	"sync/atomic"

	"newsfox/internal/domain/entity"
)

// Phase is the lifecycle position of a category view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoadingMore
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoadingMore:
		return "loading_more"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// generations hands out request tokens. Tokens are unique process-wide so a
// result can never be mistaken for one issued by a different view.
var generations atomic.Uint64

func nextGeneration() uint64 {
	return generations.Add(1)
}

// Request is one page fetch issued by a State transition.
type Request struct {
	Category   entity.Category
	Page       int
	PageSize   int
	Generation uint64
}

// Result is the outcome of executing a Request.
type Result struct {
	Request Request
	Page    *entity.Page
	Err     error
}

// State is the pagination state of one category view.
// It is a value: transitions return a new State and never mutate the receiver's
// Accumulated backing array.
type State struct {
	Category       entity.Category
	CurrentPage    int
	Accumulated    []entity.Article
	TotalAvailable int
	Phase          Phase
	LastError      error

	pending *Request
}

// Open starts a fresh view of category and returns the page 1 request.
func Open(category entity.Category) (State, Request) {
	req := Request{
		Category:   category,
		Page:       1,
		PageSize:   entity.PageSize,
		Generation: nextGeneration(),
	}
	return State{
		Category:    category,
		CurrentPage: 1,
		Phase:       PhaseLoading,
		pending:     &req,
	}, req
}

// ChangeCategory discards everything, including any in-flight request, and
// starts over on page 1 of category.
func (s State) ChangeCategory(category entity.Category) (State, Request) {
	return Open(category)
}

// CanLoadMore reports whether LoadMore would issue a request.
func (s State) CanLoadMore() bool {
	return s.Phase == PhaseLoaded && len(s.Accumulated) < s.TotalAvailable
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s.pending != nil
}

// LoadMore requests the next page. It is a no-op (ok=false) unless CanLoadMore.
func (s State) LoadMore() (next State, req Request, ok bool) {
	if !s.CanLoadMore() {
		return s, Request{}, false
	}
	req = Request{
		Category:   s.Category,
		Page:       s.CurrentPage + 1,
		PageSize:   entity.PageSize,
		Generation: nextGeneration(),
	}
	s.CurrentPage = req.Page
	s.Phase = PhaseLoadingMore
	s.LastError = nil
	s.pending = &req
	return s, req, true
}

// Retry reissues the page that failed. It is a no-op (ok=false) unless the
// view is in PhaseFailed.
func (s State) Retry() (next State, req Request, ok bool) {
	if s.Phase != PhaseFailed {
		return s, Request{}, false
	}
	req = Request{
		Category:   s.Category,
		Page:       s.CurrentPage,
		PageSize:   entity.PageSize,
		Generation: nextGeneration(),
	}
	if req.Page == 1 {
		s.Phase = PhaseLoading
	} else {
		s.Phase = PhaseLoadingMore
	}
	s.pending = &req
	return s, req, true
}

// Apply folds a Result into the state. Results that do not answer the
// current in-flight request are stale and ignored (applied=false).
func (s State) Apply(r Result) (next State, applied bool) {
	if s.pending == nil || r.Request.Generation != s.pending.Generation {
		return s, false
	}
	page := s.pending.Page
	s.pending = nil

	if r.Err != nil || r.Page == nil {
		s.Phase = PhaseFailed
		s.LastError = r.Err
		if s.LastError == nil {
			s.LastError = &entity.ProviderError{Kind: entity.ProviderErrShape, Message: "empty result"}
		}
		if page == 1 {
			// 1ページ目の失敗は一覧を空にする
			s.Accumulated = nil
			s.TotalAvailable = 0
		}
		return s, true
	}

	if page == 1 {
		s.Accumulated = append([]entity.Article(nil), r.Page.Articles...)
	} else {
		acc := make([]entity.Article, 0, len(s.Accumulated)+len(r.Page.Articles))
		acc = append(acc, s.Accumulated...)
		s.Accumulated = append(acc, r.Page.Articles...)
	}
	s.TotalAvailable = r.Page.TotalAvailable
	if page > 1 && len(r.Page.Articles) == 0 {
		// 総数より少なく打ち切られた場合は追加読み込みを止める
		s.TotalAvailable = len(s.Accumulated)
	}
	s.Phase = PhaseLoaded
	s.LastError = nil
	return s, true
}
