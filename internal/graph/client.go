package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BaseURL is the Microsoft Graph v1.0 endpoint.
const BaseURL = "https://graph.microsoft.com/v1.0"

// maxErrorBody caps how much of an error response is read for diagnostics.
const maxErrorBody = 64 * 1024

// TokenProvider supplies bearer tokens for Graph requests.
type TokenProvider interface {
	// Token returns a valid access token, acquiring one if needed.
	Token(ctx context.Context) (string, error)
	// Invalidate discards any cached token.
	Invalidate()
}

// Client performs authenticated requests against Microsoft Graph.
//
// Authentication is transparent: a token is acquired on first use, reused
// until close to expiry, and renewed at most once per request when Graph
// reports InvalidAuthenticationToken mid-flight. All other failures are
// returned to the caller unmodified.
type Client struct {
	baseURL     string
	tokens      TokenProvider
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Graph endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the HTTP client. The default follows redirects,
// which content downloads rely on.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithRateLimiter overrides the client-side rate limiter.
func WithRateLimiter(limiter *RateLimiter) Option {
	return func(c *Client) { c.rateLimiter = limiter }
}

// NewClient creates a Graph client using the given token provider.
func NewClient(tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:     BaseURL,
		tokens:      tokens,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		rateLimiter: NewRateLimiter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do performs an authenticated request against a Graph path such as
// "/users/someone@contoso.com/drive/root/children". On success the caller
// owns the response body. When Graph rejects the cached token with
// InvalidAuthenticationToken, the token is discarded and the request
// retried exactly once with a fresh one; whatever the second attempt
// returns is final. Every other error comes back as-is.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	resp, err := c.attempt(ctx, method, path, body)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsTokenExpired() {
		c.tokens.Invalidate()
		resp, err = c.attempt(ctx, method, path, body)
	}

	return resp, err
}

// attempt performs a single authenticated request. Non-2xx responses are
// drained and returned as *APIError so Do can classify them without
// touching the transport.
func (c *Client) attempt(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	var reqBody io.Reader = http.NoBody
	if len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("client-request-id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode == http.StatusTooManyRequests {
		c.rateLimiter.RecordRateLimitError(retryAfterSeconds(resp))
	}

	return nil, ParseAPIError(resp.StatusCode, errBody, requestID)
}

// retryAfterSeconds parses the Retry-After header of a throttled response.
func retryAfterSeconds(resp *http.Response) int {
	value := resp.Header.Get("Retry-After")
	if value == "" {
		return 0
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return seconds
}

// GetJSON performs a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetBytes performs a GET request and returns the raw response payload.
// Content downloads answer with a redirect to a pre-authenticated storage
// URL, which the underlying HTTP client follows transparently.
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}
