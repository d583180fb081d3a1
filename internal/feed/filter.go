package feed

import (
	"strings"

	"github.com/matheuskafuri/newsai/internal/api"
)

// Filter returns the articles matching category and query, in their
// original order. An empty category means all categories; a query that is
// blank after trimming matches everything. The category filter runs first
// and the search filter narrows its output. The result never aliases
// articles.
func Filter(articles []api.Article, query, category string) []api.Article {
	out := make([]api.Article, 0, len(articles))
	for _, a := range articles {
		if category != "" && !a.HasCategory(category) {
			continue
		}
		out = append(out, a)
	}

	if strings.TrimSpace(query) == "" {
		return out
	}

	q := strings.ToLower(query)
	matched := out[:0]
	for _, a := range out {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Summary), q) {
			matched = append(matched, a)
		}
	}
	return matched
}
