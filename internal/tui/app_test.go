package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matheuskafuri/newsai/internal/api"
	"github.com/matheuskafuri/newsai/internal/feed"
	"github.com/matheuskafuri/newsai/internal/theme"
	"go.uber.org/zap/zaptest"
)

type pageLister struct {
	mu       sync.Mutex
	articles []api.Article
	err      error
	calls    int
}

func (l *pageLister) ListArticles(ctx context.Context, limit, offset int) ([]api.Article, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	page := []api.Article{}
	if offset < len(l.articles) {
		page = append(page, l.articles[offset:min(offset+limit, len(l.articles))]...)
	}
	return page, nil
}

func (l *pageLister) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

func testArticles(n int) []api.Article {
	cats := []string{"Technology", "Science"}
	out := make([]api.Article, n)
	for i := range out {
		id := int64(i + 1)
		out[i] = api.Article{
			ID:          id,
			Title:       "Headline " + string(rune('A'+i)),
			Summary:     "Summary for story " + string(rune('A'+i)),
			PublishedAt: "2025-06-15T10:00:00",
			SourceURL:   "https://example.com/story/" + string(rune('a'+i)),
			Categories:  []string{cats[i%2]},
		}
	}
	return out
}

func newTestApp(t *testing.T, l *pageLister) (*App, *recordingOpener) {
	t.Helper()
	store := feed.New(l, feed.WithPageSize(4), feed.WithLogger(zaptest.NewLogger(t)))
	opener := &recordingOpener{}
	a := NewApp(context.Background(), RunOpts{
		Store:      store,
		Theme:      theme.New(theme.Dark),
		Categories: []string{"Technology", "Science"},
		Opener:     opener,
		Logger:     zaptest.NewLogger(t),
	})
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a.Update(a.loadCmd()())
	return a, opener
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, s string) tea.Cmd {
	_, cmd := a.Update(key(s))
	return cmd
}

// drain runs cmd and feeds the feed and browser results back into the app.
// Timer-driven messages (spinner, cursor blink) are not followed.
func drain(a *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(a, c)
		}
	case loadedMsg, moreLoadedMsg, openErrMsg:
		a.Update(msg)
	}
}

func TestInitialLoad(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(10)})

	if len(a.visible) != 4 {
		t.Fatalf("visible = %d, want 4", len(a.visible))
	}
	view := a.View()
	for _, want := range []string{"News AI", "Latest Articles", "Headline A", "Load more articles", "4 articles"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLoadingView(t *testing.T) {
	store := feed.New(&pageLister{}, feed.WithPageSize(4))
	a := NewApp(context.Background(), RunOpts{Store: store})
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(a.View(), "Loading articles...") {
		t.Errorf("expected loading view, got:\n%s", a.View())
	}
	if cmd := press(a, "m"); cmd != nil {
		t.Error("load more accepted while loading")
	}
}

func TestLoadMoreAppends(t *testing.T) {
	l := &pageLister{articles: testArticles(10)}
	a, _ := newTestApp(t, l)

	cmd := press(a, "m")
	if cmd == nil {
		t.Fatal("m returned no command")
	}
	if !a.snap.LoadingMore {
		t.Error("LoadingMore not set synchronously")
	}
	if again := press(a, "m"); again != nil {
		t.Error("second m while loading more returned a command")
	}
	if !strings.Contains(a.View(), "Loading more articles...") {
		t.Error("view missing pagination spinner")
	}

	drain(a, cmd)
	if len(a.snap.Articles) != 8 {
		t.Errorf("articles = %d, want 8", len(a.snap.Articles))
	}
	if l.calls != 2 {
		t.Errorf("lister calls = %d, want 2", l.calls)
	}

	drain(a, press(a, "m"))
	if len(a.snap.Articles) != 10 {
		t.Errorf("articles = %d, want 10", len(a.snap.Articles))
	}
	if a.snap.HasMore {
		t.Error("HasMore still set after a short page")
	}
	if !strings.Contains(a.View(), "reached the end") {
		t.Error("view missing end-of-feed message")
	}
	if cmd := press(a, "m"); cmd != nil {
		t.Error("m after the last page returned a command")
	}
}

func TestLoadMoreFailureIsNonBlocking(t *testing.T) {
	l := &pageLister{articles: testArticles(10)}
	a, _ := newTestApp(t, l)

	l.setErr(errors.New("connection refused"))
	drain(a, press(a, "m"))

	if len(a.snap.Articles) != 4 {
		t.Errorf("articles = %d, want 4 kept", len(a.snap.Articles))
	}
	view := a.View()
	if !strings.Contains(view, "Failed to load more articles") {
		t.Error("status bar missing load-more error")
	}
	if !strings.Contains(view, "Headline A") {
		t.Error("grid hidden after load-more failure")
	}

	l.setErr(nil)
	drain(a, press(a, "m"))
	if len(a.snap.Articles) != 8 {
		t.Errorf("retry: articles = %d, want 8", len(a.snap.Articles))
	}
	if a.snap.Err != nil {
		t.Errorf("error not cleared after retry: %v", a.snap.Err)
	}
}

func TestInitialFailureAndReload(t *testing.T) {
	l := &pageLister{articles: testArticles(3), err: errors.New("boom")}
	a, _ := newTestApp(t, l)

	if !strings.Contains(a.View(), "Failed to load articles") {
		t.Fatalf("expected failure view, got:\n%s", a.View())
	}
	if cmd := press(a, "m"); cmd != nil {
		t.Error("m accepted after initial failure")
	}

	l.setErr(nil)
	drain(a, press(a, "r"))
	if len(a.snap.Articles) != 3 {
		t.Errorf("articles after reload = %d, want 3", len(a.snap.Articles))
	}
	if !strings.Contains(a.View(), "Headline C") {
		t.Error("view missing reloaded articles")
	}
}

func TestEmptyFeed(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{})

	view := a.View()
	if !strings.Contains(view, "No articles yet") {
		t.Errorf("expected empty state, got:\n%s", view)
	}
	if strings.Contains(view, "Load more articles") {
		t.Error("load more offered on empty feed")
	}
}

func TestSearchFiltersAndHidesLoadMore(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(10)})

	press(a, "/")
	if a.mode != modeSearch {
		t.Fatal("/ did not enter search mode")
	}
	press(a, "headline b")
	press(a, "enter")

	if a.mode != modeNormal {
		t.Error("enter did not leave search mode")
	}
	if a.snap.SearchQuery != "headline b" {
		t.Errorf("query = %q", a.snap.SearchQuery)
	}
	if len(a.visible) != 1 || a.visible[0].ID != 2 {
		t.Errorf("visible = %v, want only article 2", a.visible)
	}
	view := a.View()
	if strings.Contains(view, "Load more articles") {
		t.Error("load more offered while searching")
	}
	if !strings.Contains(view, `Search Results for "headline b"`) {
		t.Error("view missing search heading")
	}
	if cmd := press(a, "m"); cmd != nil {
		t.Error("m accepted while filtering")
	}

	press(a, "x")
	if a.snap.SearchQuery != "" || len(a.visible) != 4 {
		t.Errorf("x did not reset: query %q, visible %d", a.snap.SearchQuery, len(a.visible))
	}
}

func TestSearchEscClears(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(4)})

	press(a, "/")
	press(a, "zzz")
	if len(a.visible) != 0 {
		t.Fatalf("visible = %d, want 0", len(a.visible))
	}
	if !strings.Contains(a.View(), "No articles found") {
		t.Error("view missing no-results state")
	}
	press(a, "esc")
	if a.snap.SearchQuery != "" || len(a.visible) != 4 {
		t.Errorf("esc did not clear search: query %q, visible %d", a.snap.SearchQuery, len(a.visible))
	}
}

func TestWhitespaceQueryDoesNotFilter(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(10)})

	press(a, "/")
	press(a, "   ")
	press(a, "enter")
	if len(a.visible) != 4 {
		t.Errorf("visible = %d, want 4", len(a.visible))
	}
	if !strings.Contains(a.View(), "Load more articles") {
		t.Error("blank query hid load more")
	}
}

func TestCategoryKeys(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(4)})

	press(a, "2")
	if a.snap.SelectedCategory != "Science" {
		t.Errorf("category = %q, want Science", a.snap.SelectedCategory)
	}
	for _, art := range a.visible {
		if !art.HasCategory("Science") {
			t.Errorf("article %d not in Science", art.ID)
		}
	}

	press(a, "tab")
	if a.snap.SelectedCategory != "" {
		t.Errorf("tab past the last chip = %q, want All", a.snap.SelectedCategory)
	}
	press(a, "shift+tab")
	if a.snap.SelectedCategory != "Science" {
		t.Errorf("shift+tab = %q, want Science", a.snap.SelectedCategory)
	}
	press(a, "0")
	if a.snap.SelectedCategory != "" || len(a.visible) != 4 {
		t.Errorf("0 did not select All: %q, %d visible", a.snap.SelectedCategory, len(a.visible))
	}
	press(a, "9")
	if a.snap.SelectedCategory != "" {
		t.Errorf("out of range chip changed category to %q", a.snap.SelectedCategory)
	}
}

func TestCursorMovement(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(4)})

	press(a, "right")
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.cursor)
	}
	// three columns at width 120
	press(a, "left")
	press(a, "down")
	if a.cursor != 3 {
		t.Errorf("cursor = %d, want 3", a.cursor)
	}
	press(a, "down")
	if a.cursor != 3 {
		t.Errorf("cursor moved past the last card: %d", a.cursor)
	}
}

func TestDetailOverlay(t *testing.T) {
	a, opener := newTestApp(t, &pageLister{articles: testArticles(4)})

	press(a, "right")
	press(a, "enter")
	if a.mode != modeDetail {
		t.Fatal("enter did not open detail")
	}
	if a.snap.Selected == nil || a.snap.Selected.ID != 2 {
		t.Fatalf("selected = %v, want article 2", a.snap.Selected)
	}
	view := a.View()
	for _, want := range []string{"Headline B", "AI Summary", "Publication Details", "https://example.com/story/b"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	drain(a, press(a, "o"))
	if len(opener.urls) != 1 || opener.urls[0] != "https://example.com/story/b" {
		t.Errorf("opened %v", opener.urls)
	}

	press(a, "esc")
	if a.mode != modeNormal || a.snap.Selected != nil {
		t.Error("esc did not close detail")
	}
}

func TestThemeToggle(t *testing.T) {
	a, _ := newTestApp(t, &pageLister{articles: testArticles(2)})

	press(a, "t")
	if a.theme.Mode() != theme.Light {
		t.Errorf("theme = %v, want light", a.theme.Mode())
	}
	if a.st.mode != theme.Light {
		t.Error("styles not rebuilt on theme change")
	}
	press(a, "t")
	if a.st.mode != theme.Dark {
		t.Error("styles not rebuilt on second toggle")
	}
}

func TestStaleResultIgnored(t *testing.T) {
	l := &pageLister{articles: testArticles(10)}
	a, _ := newTestApp(t, l)

	cmd := press(a, "m")
	a.store.Close()
	drain(a, cmd)

	if len(a.snap.Articles) != 4 {
		t.Errorf("articles = %d, want 4 after close", len(a.snap.Articles))
	}
}
