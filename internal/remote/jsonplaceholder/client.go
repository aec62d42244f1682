// Package jsonplaceholder is a client for a JSONPlaceholder-style /posts collection.
// It speaks to the public https://jsonplaceholder.typicode.com API as well as the
// fixture server in cmd/server, and classifies every failure as a NetworkError,
// HTTPError or ParseError.
package jsonplaceholder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"postfeed/internal/core/posts"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public collection endpoint
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "postfeed/1.0 (+https://github.com/postfeed)"

	// maxErrorBody limits how much of a failed response is kept in HTTPError
	maxErrorBody = 1024
	// maxResponseBody limits how much of a successful response is decoded
	maxResponseBody = 10 * 1024 * 1024

	requestIDHeader = "X-Request-ID"
)

// Client is a typed client for the /posts collection
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
	userAgent  string
	timeout    time.Duration
	timeoutSet bool
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient uses a copy of hc for requests; hc itself is never modified.
// Its Timeout is kept unless WithTimeout is also given. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
		c.timeoutSet = true
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit throttles outbound requests to rps with the given burst.
// rps <= 0 disables throttling; a burst below 1 is raised to 1.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client rooted at baseURL (e.g. https://jsonplaceholder.typicode.com)
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid baseURL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		limiter:   rate.NewLimiter(10, 20),
		logger:    slog.Default(),
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Options run in any order; the timeout lands on a private copy
	hc := http.Client{}
	if c.httpClient != nil {
		hc = *c.httpClient
		if !c.timeoutSet {
			c.timeout = hc.Timeout
		}
	}
	hc.Timeout = c.timeout
	c.httpClient = &hc
	return c, nil
}

// BaseURL returns the collection host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPosts fetches GET <base>/posts?_limit={limit}.
// The result never holds more than limit posts even if the server ignores _limit.
func (c *Client) ListPosts(ctx context.Context, limit int) ([]posts.Post, error) {
	const op = "listPosts"
	if limit <= 0 {
		return nil, fmt.Errorf("%s: %w (got %d)", op, ErrInvalidLimit, limit)
	}

	endpoint := c.baseURL + "/posts?" + url.Values{"_limit": {strconv.Itoa(limit)}}.Encode()

	var result []posts.Post
	if err := c.do(ctx, op, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	if len(result) > limit {
		c.logger.Warn("server returned more posts than requested",
			"requested", limit, "returned", len(result))
		result = result[:limit]
	}
	return result, nil
}

// CreatePost sends POST <base>/posts with the draft as JSON and returns the echoed post.
// The ID is whatever the server assigned; the public API always answers 101.
func (c *Client) CreatePost(ctx context.Context, draft posts.Draft) (*posts.Post, error) {
	const op = "createPost"

	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode draft: %w", op, err)
	}

	var created *posts.Post
	if err := c.do(ctx, op, http.MethodPost, c.baseURL+"/posts", payload, &created); err != nil {
		return nil, err
	}
	if created == nil {
		return nil, &ParseError{Op: op, Err: errEmptyPost}
	}
	return created, nil
}

// do executes a request and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, op, method, endpoint string, payload []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Op: op, URL: endpoint, Err: err}
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", requestID, "error", err)
		return &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request completed",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Limit error body to 1KB to prevent unbounded reads
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return &ParseError{Op: op, Err: err}
	}
	return nil
}
