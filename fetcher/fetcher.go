// Package fetcher provides HTTP fetching for the content pipeline.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result contains the fetched body and metadata.
type Result struct {
	Body        string
	ContentType string
	FinalURL    string // URL after following redirects
	StatusCode  int
	FetchTime   time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "Nectar/1.0 (Terminal Browser)",
		TimeoutSeconds: 20,
	}
}

// Client issues single GET requests with redirects followed
// automatically. Fetches for different tabs may run concurrently; the
// client holds no mutable state beyond the underlying http.Client.
type Client struct {
	opts Options
	http *http.Client
}

// New creates a fetch client with the given options. Zero-value
// fields fall back to DefaultOptions.
func New(o Options) *Client {
	def := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = def.UserAgent
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = def.TimeoutSeconds
	}
	return &Client{
		opts: o,
		http: &http.Client{
			Timeout: time.Duration(o.TimeoutSeconds) * time.Second,
		},
	}
}

// UserAgent returns the configured identity string.
func (c *Client) UserAgent() string {
	return c.opts.UserAgent
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.opts.TimeoutSeconds) * time.Second
}

// Get fetches a URL with a single GET. Non-2xx responses are not an
// error here; the status code is reported in the Result and callers
// decide how to surface it.
func (c *Client) Get(ctx context.Context, url string) (*Result, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &Result{
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		FetchTime:   time.Since(start),
	}, nil
}
