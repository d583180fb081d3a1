package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPublished(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-06-15T10:30:00", time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"2025-06-15T10:30:00Z", time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"2025-06-15T12:30:00+02:00", time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"2025-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := Article{PublishedAt: tt.input}.Published()
		if ok != tt.ok {
			t.Errorf("Published(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("Published(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHasCategory(t *testing.T) {
	a := Article{Categories: []string{"Technology", "Science"}}
	if !a.HasCategory("Science") {
		t.Error("expected Science to match")
	}
	if a.HasCategory("science") {
		t.Error("category match must be case-sensitive")
	}
	if (Article{}).HasCategory("Science") {
		t.Error("article without categories matched")
	}
}

func TestDecodeNullableFields(t *testing.T) {
	// Shape the backend returns when the raw row is missing.
	body := `{"id": 7, "raw_article_id": null, "title": null, "summary": "s",
		"processed_at": "2025-06-15T10:30:00", "ai_model_used": "llama3",
		"source_url": null, "published_at": null}`

	var a Article
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != 7 || a.Title != "" || a.SourceURL != "" || a.RawArticleID != nil {
		t.Errorf("unexpected decode: %+v", a)
	}
	if _, ok := a.Published(); ok {
		t.Error("null published_at should not parse")
	}
	if _, ok := a.Processed(); !ok {
		t.Error("expected processed_at to parse")
	}
}
