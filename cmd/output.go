package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/matheuskafuri/newsai/internal/api"
)

const maxTitleWidth = 70

func writeJSON(w io.Writer, articles []api.Article) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}

func writeList(w io.Writer, articles []api.Article, now time.Time) error {
	if len(articles) == 0 {
		_, err := fmt.Fprintln(w, "No articles found")
		return err
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("ID", "PUBLISHED", "TITLE", "CATEGORIES")
	for _, a := range articles {
		t.Row(
			strconv.FormatInt(a.ID, 10),
			relativeDate(a, now),
			truncate(a.Title, maxTitleWidth),
			strings.Join(a.Categories, ", "),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeDetail(w io.Writer, a api.Article, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", a.ID, a.Title)
	if t, ok := a.Published(); ok {
		fmt.Fprintf(&b, "Published:  %s (%s)\n", t.Format("Monday, January 2, 2006 03:04 PM"), humanize.RelTime(t, now, "ago", "from now"))
	} else {
		fmt.Fprintf(&b, "Published:  %s\n", orDash(a.PublishedAt))
	}
	if len(a.Categories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(a.Categories, ", "))
	}
	fmt.Fprintf(&b, "Model:      %s\n", orDash(a.AIModelUsed))
	fmt.Fprintf(&b, "Source:     %s\n", orDash(a.SourceURL))
	if a.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Summary)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func relativeDate(a api.Article, now time.Time) string {
	t, ok := a.Published()
	if !ok {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
