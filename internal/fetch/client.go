package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Client performs the two HTTP operations of a run: fetching the daily
// picture page and downloading the image it links to. Both are single
// GETs with no retries; the scheduler tries again tomorrow.
type Client struct {
	// httpClient is the underlying HTTP client. It carries the request
	// timeout so a wedged connection cannot outlive the scheduler slot.
	httpClient *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxPageSize limits the page body read.
	maxPageSize int64

	// maxImageSize limits the image download. Exceeding it is an error
	// rather than a truncation: a truncated image would be silently
	// corrupt wallpaper.
	maxImageSize int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxPageSize sets the maximum page body size.
func WithMaxPageSize(size int64) Option {
	return func(c *Client) {
		c.maxPageSize = size
	}
}

// WithMaxImageSize sets the maximum image download size.
func WithMaxImageSize(size int64) Option {
	return func(c *Client) {
		c.maxImageSize = size
	}
}

// WithHTTPClient replaces the underlying HTTP client.
// Mainly useful in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client with sensible defaults for the daily run.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    "apodwall/1.0 (+https://github.com/nao1215/apodwall)",
		maxPageSize:  5 * 1024 * 1024,
		maxImageSize: 64 * 1024 * 1024,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchPage performs a single GET for the picture page and returns the
// decoded markup.
//
// Design decision: The body is decoded with x/net/html/charset rather than
// assumed UTF-8 because the page is decades-old hand-written HTML that is
// served as ISO-8859-1 on some mirrors. charset.NewReader sniffs the
// Content-Type header and the document itself.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: GET %s returned %s", ErrBadStatus, pageURL, resp.Status)
	}

	bodyReader := io.LimitReader(resp.Body, c.maxPageSize)
	decoded, err := charset.NewReader(bodyReader, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode page %s: %w", pageURL, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("failed to read page %s: %w", pageURL, err)
	}

	return string(body), nil
}
