package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/matheuskafuri/newsai/internal/api"
)

const (
	excerptRunes = 150

	// Card body lines: 2 title, 1 blank, 3 excerpt, 1 meta.
	cardLines  = 7
	cardHeight = cardLines + 2 // border
)

// columns maps terminal width to grid columns, mirroring the md/lg
// breakpoints of the web layout.
func columns(width int) int {
	switch {
	case width < 80:
		return 1
	case width < 120:
		return 2
	default:
		return 3
	}
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// excerpt is the card preview of a summary.
func excerpt(summary string) string {
	summary = strings.Join(strings.Fields(summary), " ")
	runes := []rune(summary)
	if len(runes) <= excerptRunes {
		return summary
	}
	return strings.TrimRight(string(runes[:excerptRunes]), " ") + "..."
}

// clampLines wraps s to width and keeps at most n lines, marking a cut
// with "...".
func clampLines(s string, width, n int) []string {
	lines := strings.Split(wrapText(s, width), "\n")
	if len(lines) <= n {
		return lines
	}
	lines = lines[:n]
	last := []rune(lines[n-1])
	if len(last)+3 > width {
		last = last[:max(0, width-3)]
	}
	lines[n-1] = string(last) + "..."
	return lines
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	for i, l := range lines {
		lines[i] = truncateStr(l, width)
	}
	return strings.Join(lines, "\n")
}

// publishedLabel renders "Jun 15, 2025 · 3 days ago", or the raw value when
// it doesn't parse.
func publishedLabel(a api.Article, now time.Time) string {
	t, ok := a.Published()
	if !ok {
		if a.PublishedAt == "" {
			return "date unknown"
		}
		return a.PublishedAt
	}
	return t.Format("Jan 2, 2006") + " · " + humanize.RelTime(t, now, "ago", "from now")
}

func renderCard(st styles, a api.Article, selected bool, width int, now time.Time) string {
	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	title := clampLines(a.Title, inner, 2)
	for len(title) < 2 {
		title = append(title, "")
	}
	body := clampLines(excerpt(a.Summary), inner, 3)
	for len(body) < 3 {
		body = append(body, "")
	}

	meta := st.cardMeta.Render(truncateStr(publishedLabel(a, now), inner-16))
	badge := st.badge.Render("✓ AI Summarized")
	gap := inner - lipgloss.Width(meta) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}

	lines := make([]string, 0, cardLines)
	for _, l := range title {
		lines = append(lines, st.cardTitle.Render(l))
	}
	lines = append(lines, "")
	for _, l := range body {
		lines = append(lines, st.cardBody.Render(l))
	}
	lines = append(lines, meta+strings.Repeat(" ", gap)+badge)

	style := st.card
	if selected {
		style = st.cardSelected
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// gridWindow returns the first visible row so that the cursor's row stays
// on screen.
func gridWindow(cursor, cols, rows, total int) (start int) {
	if rows < 1 {
		rows = 1
	}
	cursorRow := cursor / cols
	totalRows := (total + cols - 1) / cols
	if cursorRow >= rows {
		start = cursorRow - rows + 1
	}
	if start+rows > totalRows {
		start = max(0, totalRows-rows)
	}
	return start
}

func renderGrid(st styles, articles []api.Article, cursor, width, height int, now time.Time) string {
	if len(articles) == 0 {
		return ""
	}
	cols := columns(width)
	cardW := width / cols
	rows := max(1, height/cardHeight)
	start := gridWindow(cursor, cols, rows, len(articles))

	var out []string
	for r := start; r < start+rows; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(articles) {
				break
			}
			cards = append(cards, renderCard(st, articles[i], i == cursor, cardW, now))
		}
		if len(cards) == 0 {
			break
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func lipglossCenter(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
