package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the News AI API listens in the stock compose setup.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultLimit is the page size used when a caller passes limit <= 0.
	DefaultLimit = 20
)

// Client is a thin read-only client for the News AI API. It does not cache,
// retry or set timeouts of its own.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a Client for baseURL, which may be an origin
// ("http://api:8000") or include a path prefix ("https://host/news").
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api url %q has no host", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{base: u, http: http.DefaultClient, logger: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the resolved API origin.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListArticles fetches one page of articles starting at offset.
func (c *Client) ListArticles(ctx context.Context, limit, offset int) ([]Article, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var articles []Article
	if err := c.get(ctx, "list articles", "/articles", q, &articles); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []Article{}
	}
	return articles, nil
}

// GetArticle fetches a single article by id.
func (c *Client) GetArticle(ctx context.Context, id int64) (Article, error) {
	var a Article
	path := "/articles/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "get article", path, nil, &a); err != nil {
		return Article{}, err
	}
	return a, nil
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health checks the API's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var h healthResponse
	if err := c.get(ctx, "health", "/health", nil, &h); err != nil {
		return err
	}
	if h.Status != "ok" {
		return &NetworkError{
			Op:  "health",
			URL: c.endpoint("/health", nil),
			Err: fmt.Errorf("unexpected status %q", h.Status),
		}
	}
	return nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	endpoint := c.endpoint(path, q)
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("url", endpoint),
			zap.String("request_id", reqID),
			zap.Error(err))
		return &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("url", endpoint),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &NetworkError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(b))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, URL: endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
