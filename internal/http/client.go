package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response is read into memory.
const maxBodyBytes = 32 << 20

// Config configures a Client.
type Config struct {
	// Timeout bounds each request. Zero means 60 seconds.
	Timeout time.Duration

	// UserAgent is sent with every request. Empty means "albumlinks".
	UserAgent string

	// RateLimit is the maximum number of requests per second. Zero or
	// negative disables pacing.
	RateLimit float64

	// Transport overrides the underlying round tripper, mainly for tests.
	Transport http.RoundTripper
}

// Client wraps HTTP operations with albumlinks-specific configuration.
//
// Example usage:
//
//	client := NewClient(Config{UserAgent: "albumlinks-tui"})
//
//	// Fetch and decode JSON
//	var out map[string]any
//	err := client.GetJSON(ctx, "http://localhost:5002/health", &out)
//
//	// Fetch raw bytes
//	data, err := client.DownloadBytes(ctx, coverURL)
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a new HTTP client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "albumlinks"
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: cfg.Transport,
		},
		userAgent: userAgent,
		limiter:   limiter,
	}
}

// StatusError is returned when the server answers outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
	URL    string

	// Body holds the (possibly truncated) response body.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Get performs a GET request and returns the response body as bytes.
//
// The request waits for the rate limiter, includes the configured User-Agent
// header and is bound to ctx.
//
// Returns an error if:
//   - The context is cancelled while waiting or reading
//   - The request fails
//   - The response status is not 2xx (as *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, image/*;q=0.9, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
			URL:    url,
			Body:   body,
		}
	}

	return body, nil
}

// GetJSON performs a GET request and decodes the JSON body into v.
//
// Example:
//
//	var page dto.AlbumsPage
//	if err := client.GetJSON(ctx, url, &page); err != nil {
//	    return err
//	}
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: url, Err: err}
	}

	return nil
}

// DecodeError is returned by GetJSON when a 2xx body is not valid JSON for
// the target type.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like cover art images.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
