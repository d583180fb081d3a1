package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsai/internal/theme"
)

// categoryBar is the row of category chips. Index 0 is "All".
type categoryBar struct {
	categories []string
	selected   string
}

func newCategoryBar(categories []string) categoryBar {
	return categoryBar{categories: categories}
}

// next moves the selection by delta, wrapping through "All".
func (c *categoryBar) next(delta int) string {
	n := len(c.categories) + 1
	i := c.index()
	i = ((i+delta)%n + n) % n
	c.selectIndex(i)
	return c.selected
}

// selectIndex picks chip i; 0 is All. Out of range is ignored.
func (c *categoryBar) selectIndex(i int) bool {
	if i < 0 || i > len(c.categories) {
		return false
	}
	if i == 0 {
		c.selected = ""
	} else {
		c.selected = c.categories[i-1]
	}
	return true
}

func (c *categoryBar) index() int {
	for i, cat := range c.categories {
		if cat == c.selected {
			return i + 1
		}
	}
	return 0
}

func (c *categoryBar) label() string {
	if c.selected == "" {
		return "All"
	}
	return c.selected
}

func (c *categoryBar) render(st styles, width int) string {
	sep := st.chipSep.Render(" · ")
	parts := make([]string, 0, len(c.categories)+1)

	style := st.chipInactive
	if c.selected == "" {
		style = st.chipActive
	}
	parts = append(parts, style.Render("0 All"))

	for i, cat := range c.categories {
		style := st.chipInactive
		if cat == c.selected {
			style = st.chipActive
		}
		label := cat
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, cat)
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width-1 && row != "" {
			break
		}
		row = candidate
	}

	return st.chipBar.Width(width).Render(row)
}

func renderHeader(st styles, width int, query string, searching bool, searchView string) string {
	left := st.header.Render("News AI") + " " + st.headerTag.Render("AI-powered news insights")

	toggle := "☾ Dark"
	if st.mode == theme.Dark {
		toggle = "☀ Light"
	}
	right := st.themeToggle.Render("t " + toggle)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	top := left + strings.Repeat(" ", gap) + right

	var search string
	switch {
	case searching:
		search = " " + searchView
	case query != "":
		search = st.searchIdle.Render("/ " + query + "  (x to clear)")
	default:
		search = st.searchIdle.Render("/ Search articles...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, search)
}

func renderHeading(st styles, query string, found int) string {
	if strings.TrimSpace(query) == "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			st.heading.Render("Latest Articles"),
			st.subheading.Render("Discover AI-summarized news from trusted sources around the world"))
	}
	plural := "s"
	if found == 1 {
		plural = ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.heading.Render(fmt.Sprintf("Search Results for %q", query)),
		st.subheading.Render(fmt.Sprintf("Found %d article%s matching your search", found, plural)))
}
