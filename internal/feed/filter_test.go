package feed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matheuskafuri/newsai/internal/api"
)

func sampleArticles() []api.Article {
	return []api.Article{
		{ID: 1, Title: "AI breakthrough", Summary: "A new model", Categories: []string{"Technology"}},
		{ID: 2, Title: "Markets rally", Summary: "Firm uses ai techniques to trade", Categories: []string{"Business", "Technology"}},
		{ID: 3, Title: "Election results", Summary: "Turnout was high", Categories: []string{"Politics"}},
		{ID: 4, Title: "New telescope", Summary: "Images of distant galaxies"},
	}
}

func ids(articles []api.Article) []int64 {
	out := make([]int64, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     []int64
	}{
		{"no filters", "", "", []int64{1, 2, 3, 4}},
		{"whitespace query", "   \t", "", []int64{1, 2, 3, 4}},
		{"search title or summary", "AI", "", []int64{1, 2}},
		{"search is case-insensitive", "eLeCtIoN", "", []int64{3}},
		{"search matches summary only", "galaxies", "", []int64{4}},
		{"category", "", "Technology", []int64{1, 2}},
		{"category is case-sensitive", "", "technology", []int64{}},
		{"category and search intersect", "markets", "Technology", []int64{2}},
		{"category excludes search hit", "election", "Technology", []int64{}},
		{"no match", "zzz", "", []int64{}},
		{"unknown category", "", "Sports", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleArticles(), tt.query, tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q, %q) mismatch (-want +got):\n%s", tt.query, tt.category, diff)
			}
		})
	}
}

func TestFilterCategoryIsComplete(t *testing.T) {
	articles := sampleArticles()
	got := Filter(articles, "", "Technology")
	for _, a := range got {
		if !a.HasCategory("Technology") {
			t.Errorf("article %d lacks the selected category", a.ID)
		}
	}
	want := 0
	for _, a := range articles {
		if a.HasCategory("Technology") {
			want++
		}
	}
	if len(got) != want {
		t.Errorf("expected %d articles, got %d", want, len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	articles := sampleArticles()
	first := Filter(articles, "ai", "Technology")
	second := Filter(articles, "ai", "Technology")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated filter differs (-first +second):\n%s", diff)
	}
	again := Filter(first, "ai", "Technology")
	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("filtering a filtered set changed it (-first +again):\n%s", diff)
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	articles := sampleArticles()
	got := Filter(articles, "", "")
	got[0].Title = "changed"
	if articles[0].Title != "AI breakthrough" {
		t.Error("Filter result shares backing array with its input")
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, "ai", "")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}
