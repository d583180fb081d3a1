package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsai/internal/api"
)

const maxDetailCategories = 5

// renderSummary renders the AI summary as markdown in the active theme,
// falling back to plain wrapped text.
func renderSummary(st styles, summary string, width int) string {
	if strings.TrimSpace(summary) == "" {
		return st.detailValue.Render("(No summary available)")
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(st.markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(summary); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return st.detailValue.Render(wrapText(summary, width))
}

func detailRow(st styles, label, value string) string {
	return st.detailLabel.Render(label) + st.detailValue.Render(value)
}

// renderDetail builds the scrollable body of the detail overlay. It only
// uses data already held for the article.
func renderDetail(st styles, a api.Article, width int) string {
	if width < 20 {
		width = 20
	}
	var parts []string

	if a.ImageURL != "" {
		parts = append(parts, st.detailLink.Render("Image: "+a.ImageURL), "")
	}

	tags := []string{st.badge.Render("✓ AI Summarized")}
	cats := a.Categories
	if len(cats) > maxDetailCategories {
		cats = cats[:maxDetailCategories]
	}
	for _, c := range cats {
		tags = append(tags, st.category.Render(c))
	}
	parts = append(parts, strings.Join(tags, " "), "")

	title := a.Title
	if title == "" {
		title = "(Untitled)"
	}
	parts = append(parts, st.detailTitle.Width(width).Render(title))

	parts = append(parts, st.detailSection.Render("AI Summary"))
	parts = append(parts, renderSummary(st, a.Summary, width))

	parts = append(parts, st.detailSection.Render("Publication Details"))
	if t, ok := a.Published(); ok {
		parts = append(parts,
			detailRow(st, "Published", t.Format("Monday, January 2, 2006")),
			detailRow(st, "Time", t.Format("03:04 PM")))
	} else {
		parts = append(parts, detailRow(st, "Published", valueOr(a.PublishedAt, "Unknown")))
	}
	if t, ok := a.Processed(); ok {
		parts = append(parts, detailRow(st, "Processed", t.Format("Jan 2, 2006 03:04 PM")))
	} else {
		parts = append(parts, detailRow(st, "Processed", valueOr(a.ProcessedAt, "Unknown")))
	}
	parts = append(parts, detailRow(st, "AI model", valueOr(a.AIModelUsed, "Unknown")))

	parts = append(parts, st.detailSection.Render("Source"))
	if a.SourceURL != "" {
		parts = append(parts, st.detailLink.Width(width).Render(a.SourceURL))
	} else {
		parts = append(parts, st.detailValue.Render("No source link"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// overlaySize returns the outer size of the detail box for a screen.
func overlaySize(width, height int) (w, h int) {
	w = min(width-4, 100)
	h = height - 2
	return max(w, 24), max(h, 8)
}
