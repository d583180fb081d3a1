package feed

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/matheuskafuri/newsai/internal/api"
	"go.uber.org/zap"
)

// DefaultPageSize is the number of articles requested per page.
const DefaultPageSize = 20

// Lister fetches one page of articles. *api.Client satisfies it.
type Lister interface {
	ListArticles(ctx context.Context, limit, offset int) ([]api.Article, error)
}

// State is a point-in-time copy of the feed.
type State struct {
	Articles         []api.Article
	HasMore          bool
	Loading          bool
	LoadingMore      bool
	Err              *LoadError
	SearchQuery      string
	SelectedCategory string
	Selected         *api.Article
}

// Filtered is the visible subset of Articles. It is recomputed on every
// call.
func (s State) Filtered() []api.Article {
	return Filter(s.Articles, s.SearchQuery, s.SelectedCategory)
}

// Filtering reports whether a search or category filter is active.
func (s State) Filtering() bool {
	return s.SelectedCategory != "" || strings.TrimSpace(s.SearchQuery) != ""
}

// InitialFailed reports whether the mount-time load failed.
func (s State) InitialFailed() bool {
	return s.Err != nil && s.Err.Kind == InitialLoadFailed
}

// ShowLoadMore reports whether the "load more" affordance should be offered.
func (s State) ShowLoadMore() bool {
	return s.HasMore && !s.Filtering() && !s.Loading && !s.InitialFailed()
}

// Exhausted reports whether every page has been loaded.
func (s State) Exhausted() bool {
	return !s.HasMore && len(s.Articles) > 0
}

// Empty reports a successful load that produced nothing.
func (s State) Empty() bool {
	return !s.Loading && s.Err == nil && len(s.Articles) == 0
}

// Page is a reserved "load more" request.
type Page struct {
	Limit  int
	Offset int
	gen    uint64
}

// Store owns the feed state. All methods are safe for concurrent use; the
// network call of a load runs outside the lock.
type Store struct {
	lister   Lister
	pageSize int
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	served int
	gen    uint64
	closed bool
}

type Option func(*Store)

func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(lister Lister, opts ...Option) *Store {
	s := &Store{
		lister:   lister,
		pageSize: DefaultPageSize,
		logger:   zap.NewNop(),
		state: State{
			Articles: []api.Article{},
			HasMore:  true,
			Loading:  true,
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PageSize returns the configured page size.
func (s *Store) PageSize() int { return s.pageSize }

// Load runs the initial fetch and replaces the collection with its result.
// Calling it again reloads; a "load more" still in flight is abandoned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStale
	}
	s.gen++
	gen := s.gen
	s.state.Loading = true
	s.state.LoadingMore = false
	s.state.Err = nil
	s.mu.Unlock()

	articles, err := s.lister.ListArticles(ctx, s.pageSize, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrStale
	}
	s.state.Loading = false
	if err != nil {
		s.state.Err = &LoadError{Kind: InitialLoadFailed, Err: err}
		s.logger.Warn("initial load failed", zap.Error(err))
		return s.state.Err
	}

	s.state.Articles = dedupe(nil, articles)
	s.served = len(articles)
	s.state.HasMore = len(articles) == s.pageSize
	s.state.Selected = nil
	s.logger.Info("articles loaded",
		zap.Int("count", len(articles)),
		zap.Bool("has_more", s.state.HasMore))
	return nil
}

// Reserve claims the next page. It returns false, changing nothing, while a
// load is running, after the last page, after a failed initial load or once
// the store is closed. On success LoadingMore is set and the caller must
// pass the page to Complete.
func (s *Store) Reserve() (Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.state
	if s.closed || st.Loading || st.LoadingMore || !st.HasMore || st.InitialFailed() {
		return Page{}, false
	}
	st.LoadingMore = true
	st.Err = nil
	return Page{Limit: s.pageSize, Offset: s.served, gen: s.gen}, true
}

// Complete fetches a reserved page and applies it. A result that arrives
// after Close or a reload is dropped and ErrStale returned.
func (s *Store) Complete(ctx context.Context, p Page) error {
	articles, err := s.lister.ListArticles(ctx, p.Limit, p.Offset)

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.gen != s.gen {
		s.logger.Debug("dropping stale page", zap.Int("offset", p.Offset))
		return ErrStale
	}
	s.state.LoadingMore = false

	if err != nil {
		s.state.Err = &LoadError{Kind: LoadMoreFailed, Err: err}
		s.logger.Warn("load more failed", zap.Int("offset", p.Offset), zap.Error(err))
		return s.state.Err
	}

	if len(articles) == 0 {
		s.state.HasMore = false
		return nil
	}
	s.state.Articles = dedupe(s.state.Articles, articles)
	s.served += len(articles)
	s.state.HasMore = len(articles) == p.Limit
	s.logger.Info("page appended",
		zap.Int("offset", p.Offset),
		zap.Int("count", len(articles)),
		zap.Int("total", len(s.state.Articles)),
		zap.Bool("has_more", s.state.HasMore))
	return nil
}

// LoadMore reserves and completes the next page. It reports false when the
// call was a no-op.
func (s *Store) LoadMore(ctx context.Context) (bool, error) {
	p, ok := s.Reserve()
	if !ok {
		return false, nil
	}
	return true, s.Complete(ctx, p)
}

// Close marks the store torn down. Fetches still in flight become no-ops.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.state.Loading = false
	s.state.LoadingMore = false
}

func (s *Store) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchQuery = q
}

// SetCategory selects a category; "" means all.
func (s *Store) SetCategory(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedCategory = c
}

// ResetFilters clears both the search query and the category.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchQuery = ""
	s.state.SelectedCategory = ""
}

// Select opens the detail view for an already loaded article.
func (s *Store) Select(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.state.Articles, func(a api.Article) bool { return a.ID == id })
	if i < 0 {
		return false
	}
	a := s.state.Articles[i]
	s.state.Selected = &a
	return true
}

func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Articles = slices.Clone(s.state.Articles)
	return st
}

// dedupe appends the articles of page whose ids are not already in dst.
func dedupe(dst, page []api.Article) []api.Article {
	seen := make(map[int64]struct{}, len(dst)+len(page))
	for _, a := range dst {
		seen[a.ID] = struct{}{}
	}
	out := slices.Clip(dst)
	for _, a := range page {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	if out == nil {
		out = []api.Article{}
	}
	return out
}
