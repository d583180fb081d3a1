package api

import (
	"slices"
	"time"

	"github.com/araddon/dateparse"
)

// Article is one AI-summarized news item as served by the News AI API.
// Values are never mutated after decoding.
type Article struct {
	ID           int64    `json:"id"`
	RawArticleID *int64   `json:"raw_article_id,omitempty"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	PublishedAt  string   `json:"published_at"`
	SourceURL    string   `json:"source_url"`
	Categories   []string `json:"categories,omitempty"`
	AIModelUsed  string   `json:"ai_model_used,omitempty"`
	ProcessedAt  string   `json:"processed_at,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// Published parses PublishedAt. The backend emits ISO-8601 with and
// without a zone; anything unparseable reports false.
func (a Article) Published() (time.Time, bool) {
	return parseTimestamp(a.PublishedAt)
}

// Processed parses ProcessedAt, the time summarization completed.
func (a Article) Processed() (time.Time, bool) {
	return parseTimestamp(a.ProcessedAt)
}

// HasCategory reports whether c is one of the article's categories.
// Matching is exact and case-sensitive.
func (a Article) HasCategory(c string) bool {
	return slices.Contains(a.Categories, c)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
