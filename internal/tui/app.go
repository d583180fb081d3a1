package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsai/internal/api"
	"github.com/matheuskafuri/newsai/internal/browser"
	"github.com/matheuskafuri/newsai/internal/feed"
	"github.com/matheuskafuri/newsai/internal/theme"
	"go.uber.org/zap"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeDetail
	modeHelp
)

// Lines used by everything except the grid: header (2), category bar,
// heading (2), footer, status bar and one spacer.
const chromeHeight = 8

type App struct {
	ctx    context.Context
	store  *feed.Store
	theme  *theme.State
	opener browser.Opener
	logger *zap.Logger

	snap    feed.State
	visible []api.Article
	cursor  int
	mode    mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	detail      viewport.Model
	categoryBar categoryBar
	st          styles

	notice      string
	unsubscribe func()
	now         func() time.Time
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Store      *feed.Store
	Theme      *theme.State
	Categories []string
	Opener     browser.Opener
	Logger     *zap.Logger
}

func NewApp(ctx context.Context, opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	if opts.Theme == nil {
		opts.Theme = theme.New(theme.Dark)
	}
	if opts.Opener == nil {
		opts.Opener = browser.System{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	a := &App{
		ctx:         ctx,
		store:       opts.Store,
		theme:       opts.Theme,
		opener:      opts.Opener,
		logger:      opts.Logger,
		searchInput: ti,
		spinner:     sp,
		detail:      viewport.New(0, 0),
		categoryBar: newCategoryBar(opts.Categories),
		now:         time.Now,
	}
	a.applyTheme(opts.Theme.Mode())
	a.unsubscribe = opts.Theme.Subscribe(a.applyTheme)
	a.refresh()
	return a
}

func (a *App) applyTheme(m theme.Mode) {
	a.st = newStyles(m)
	a.searchInput.Prompt = a.st.searchPrompt.Render("/ ")
	a.spinner.Style = a.st.spinner
	if a.mode == modeDetail {
		a.setDetailContent()
	}
}

// Close detaches the app from shared state.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

// refresh re-reads the store and recomputes the visible set.
func (a *App) refresh() {
	a.snap = a.store.Snapshot()
	a.visible = a.snap.Filtered()
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
}

func (a *App) busy() bool {
	return a.snap.Loading || a.snap.LoadingMore
}

func (a *App) loadCmd() tea.Cmd {
	store, ctx := a.store, a.ctx
	return func() tea.Msg {
		return loadedMsg{err: store.Load(ctx)}
	}
}

// loadMoreCmd claims the next page on the update goroutine, so a second
// press sees LoadingMore before any request is sent.
func (a *App) loadMoreCmd() tea.Cmd {
	p, ok := a.store.Reserve()
	if !ok {
		return nil
	}
	a.refresh()
	store, ctx := a.store, a.ctx
	fetch := func() tea.Msg {
		return moreLoadedMsg{err: store.Complete(ctx, p)}
	}
	return tea.Batch(fetch, a.spinner.Tick)
}

func openCmd(o browser.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := o.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeDetail()
		return a, nil

	case tea.KeyMsg:
		// Clear sticky notice on any keypress
		a.notice = ""
		return a.handleKey(msg)

	case loadedMsg:
		if errors.Is(msg.err, feed.ErrStale) {
			return a, nil
		}
		a.cursor = 0
		a.refresh()
		return a, nil

	case moreLoadedMsg:
		if errors.Is(msg.err, feed.ErrStale) {
			return a, nil
		}
		a.refresh()
		return a, nil

	case openErrMsg:
		a.notice = msg.err.Error()
		a.logger.Warn("opening source url", zap.Error(msg.err))
		return a, nil

	case spinner.TickMsg:
		if a.busy() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeDetail:
		return a.handleDetailKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	if a.snap.Loading || a.snap.InitialFailed() {
		return a.handleBlockedKey(msg)
	}

	cols := columns(a.width)
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "right", "l":
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
	case "left", "h":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor+cols < len(a.visible) {
			a.cursor += cols
		}
	case "up", "k":
		if a.cursor-cols >= 0 {
			a.cursor -= cols
		}
	case "home", "g":
		a.cursor = 0
	case "end", "G":
		a.cursor = max(0, len(a.visible)-1)
	case "enter":
		return a, a.openDetail()
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.snap.SearchQuery)
		a.searchInput.CursorEnd()
		return a, a.searchInput.Focus()
	case "tab":
		a.selectCategory(a.categoryBar.next(1))
	case "shift+tab":
		a.selectCategory(a.categoryBar.next(-1))
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if a.categoryBar.selectIndex(int(msg.String()[0] - '0')) {
			a.selectCategory(a.categoryBar.selected)
		}
	case "x":
		a.store.ResetFilters()
		a.categoryBar.selected = ""
		a.searchInput.SetValue("")
		a.cursor = 0
		a.refresh()
	case "m":
		if a.snap.ShowLoadMore() {
			return a, a.loadMoreCmd()
		}
	case "r":
		return a, a.reload()
	case "t":
		a.theme.Toggle()
	case "?":
		a.mode = modeHelp
	}
	return a, nil
}

// handleBlockedKey covers the loading and failed screens.
func (a *App) handleBlockedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		if a.snap.InitialFailed() {
			return a, a.reload()
		}
	case "t":
		a.theme.Toggle()
	}
	return a, nil
}

func (a *App) reload() tea.Cmd {
	if a.snap.Loading {
		return nil
	}
	a.snap.Loading = true
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

func (a *App) selectCategory(c string) {
	a.store.SetCategory(c)
	a.cursor = 0
	a.refresh()
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.store.SetSearch("")
		a.refresh()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	prev := a.searchInput.Value()
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-filter on actual value changes, not cursor moves etc.
	if v := a.searchInput.Value(); v != prev {
		a.store.SetSearch(v)
		a.cursor = 0
		a.refresh()
	}
	return a, cmd
}

func (a *App) openDetail() tea.Cmd {
	if a.cursor >= len(a.visible) {
		return nil
	}
	if !a.store.Select(a.visible[a.cursor].ID) {
		return nil
	}
	a.refresh()
	a.mode = modeDetail
	a.resizeDetail()
	a.detail.GotoTop()
	return nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		a.store.CloseDetail()
		a.refresh()
		a.mode = modeNormal
		return a, nil
	case "o":
		if sel := a.snap.Selected; sel != nil {
			return a, openCmd(a.opener, sel.SourceURL)
		}
		return a, nil
	case "t":
		a.theme.Toggle()
		return a, nil
	}

	var cmd tea.Cmd
	a.detail, cmd = a.detail.Update(msg)
	return a, cmd
}

func (a *App) resizeDetail() {
	w, h := overlaySize(a.width, a.height)
	// border (2) + horizontal padding (4); title bar and hints take 2 lines
	a.detail.Width = max(1, w-6)
	a.detail.Height = max(1, h-4)
	if a.mode == modeDetail {
		a.setDetailContent()
	}
}

func (a *App) setDetailContent() {
	if a.snap.Selected == nil {
		return
	}
	a.detail.SetContent(renderDetail(a.st, *a.snap.Selected, a.detail.Width))
}

func (a *App) View() string {
	if a.width == 0 {
		return a.st.header.Render("newsai")
	}

	switch {
	case a.mode == modeHelp:
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	case a.mode == modeDetail && a.snap.Selected != nil:
		return a.renderOverlay()
	case a.snap.Loading && len(a.snap.Articles) == 0:
		return a.withBottomBar(
			lipglossCenter(a.spinner.View()+" Loading articles...", a.width, a.height-1),
			"t theme  q quit")
	case a.snap.InitialFailed():
		msg := a.st.errorText.Render(a.snap.Err.Message())
		return a.withBottomBar(lipglossCenter(msg, a.width, a.height-1), "r retry  q quit")
	}

	header := renderHeader(a.st, a.width, a.snap.SearchQuery, a.mode == modeSearch, a.searchInput.View())
	chips := a.categoryBar.render(a.st, a.width)
	heading := renderHeading(a.st, a.snap.SearchQuery, len(a.visible))

	gridHeight := max(cardHeight, a.height-chromeHeight)
	var grid string
	if len(a.visible) == 0 {
		grid = lipglossCenter(a.emptyText(), a.width, gridHeight)
	} else {
		grid = renderGrid(a.st, a.visible, a.cursor, a.width, gridHeight, a.now())
		grid = lipgloss.NewStyle().Height(gridHeight).Render(grid)
	}

	status := renderStatusBar(a.st, statusInfo{
		loaded:    len(a.snap.Articles),
		visible:   len(a.visible),
		filtering: a.snap.Filtering(),
		category:  a.categoryBar.label(),
		searching: a.mode == modeSearch,
		errText:   a.statusError(),
	}, a.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, chips, heading, "", grid, a.footer(), status)
}

func (a *App) emptyText() string {
	if a.snap.Filtering() {
		return "No articles found\n\nTry adjusting your search terms or category"
	}
	return "No articles yet"
}

// footer is the load-more affordance, the pagination spinner or the
// end-of-list message.
func (a *App) footer() string {
	switch {
	case a.snap.LoadingMore:
		return a.st.footer.Render(a.spinner.View() + " Loading more articles...")
	case a.snap.ShowLoadMore():
		return a.st.loadMore.Render("m  Load more articles")
	case a.snap.Exhausted() && !a.snap.Filtering():
		return a.st.footer.Render("You've reached the end of the feed")
	default:
		return ""
	}
}

func (a *App) statusError() string {
	if a.notice != "" {
		return a.notice
	}
	if a.snap.Err != nil && a.snap.Err.Kind == feed.LoadMoreFailed {
		return a.snap.Err.Message() + " (m to retry)"
	}
	return ""
}

func (a *App) renderOverlay() string {
	w, h := overlaySize(a.width, a.height)

	bar := a.st.header.Render("Article") + a.st.helpDim.Render(
		"  esc close  o open source  ↑/↓ scroll  t theme")
	body := lipgloss.JoinVertical(lipgloss.Left, bar, "", a.detail.View())
	if a.notice != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, a.st.errorText.Render(a.notice))
	}
	box := a.st.overlay.Width(w - 2).Height(h - 2).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(a.st, hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:max(0, a.height-1)]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) renderHelp() string {
	title := a.st.header.Render("News AI")
	dim := a.st.helpDim

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  ←↑↓→, hjkl    Move between cards\n" +
		"  g/G           First / last card\n" +
		"  enter         Open article details\n\n" +
		dim.Render("Filtering") + "\n" +
		"  /             Search titles and summaries\n" +
		"  tab/shift+tab Next / previous category\n" +
		"  0-9           Pick category (0 = All)\n" +
		"  x             Clear search and category\n\n" +
		dim.Render("Feed") + "\n" +
		"  m             Load more articles\n" +
		"  r             Reload from the first page\n\n" +
		dim.Render("Details") + "\n" +
		"  o             Open source in browser\n" +
		"  esc           Close\n\n" +
		dim.Render("General") + "\n" +
		"  t             Toggle light / dark\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

	card := a.st.helpCard.Render(help)

	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI. The store is closed and the context cancelled when
// the program exits, so responses still in flight are dropped.
func Run(ctx context.Context, opts RunOpts) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer opts.Store.Close()

	app := NewApp(ctx, opts)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
