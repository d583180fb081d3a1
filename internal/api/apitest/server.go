// Package apitest runs an in-process fake of the News AI API for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matheuskafuri/newsai/internal/api"
)

// Server serves a fixed article collection the way the real API does:
// limit/offset pagination, 404 for unknown ids, limit bounded to 1..100.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	articles []api.Article
	failWith int
	requests []string
}

// NewServer starts a fake API holding articles and registers its shutdown
// with t.Cleanup.
func NewServer(t testing.TB, articles []api.Article) *Server {
	t.Helper()

	s := &Server{articles: articles}
	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/articles", s.list)
	r.Get("/articles/{id}", s.get)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailWith makes every following request answer with status. Zero restores
// normal behaviour.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Requests returns the request URIs seen so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.RequestURI())
		status := s.failWith
		s.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil || limit < 1 || limit > 100 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid limit"})
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid offset"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	page := []api.Article{}
	if offset < len(s.articles) {
		end := min(offset+limit, len(s.articles))
		page = s.articles[offset:end]
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Articles builds n sequential articles with ids starting at 1.
func Articles(n int) []api.Article {
	out := make([]api.Article, n)
	for i := range out {
		id := int64(i + 1)
		out[i] = api.Article{
			ID:          id,
			Title:       "Article " + strconv.FormatInt(id, 10),
			Summary:     "Summary of article " + strconv.FormatInt(id, 10),
			PublishedAt: "2025-06-15T10:00:00",
			SourceURL:   "https://example.com/a/" + strconv.FormatInt(id, 10),
		}
	}
	return out
}
