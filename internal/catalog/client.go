package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"
)

const (
	// SearchPath is the catalog's free-text search endpoint.
	SearchPath = "/api/books/search"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client queries the catalog API over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     logr.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less leaves the
// client unlimited, which is the default.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchURL builds the lookup URL for query. The query is sent verbatim,
// URL-encoded, with no paging parameters.
func (c *Client) SearchURL(query string) string {
	return c.baseURL + SearchPath + "?" + url.Values{"query": {query}}.Encode()
}

// Search returns every hit for query in the order the API ranked them.
func (c *Client) Search(ctx context.Context, query string) ([]Book, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &LookupError{Op: "search", Query: query, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	endpoint := c.SearchURL(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{Op: "search", Query: query, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &LookupError{Op: "search", Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &LookupError{Op: "search", Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{Op: "search", Query: query, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	var books []Book
	if err := json.Unmarshal(body, &books); err != nil {
		return nil, &LookupError{Op: "search", Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("parse response: %w", err)}
	}

	c.log.V(1).Info("catalog search", "query", query, "hits", len(books), "elapsed", time.Since(start).String())
	return books, nil
}
