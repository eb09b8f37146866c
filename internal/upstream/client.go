// Package upstream performs the single outbound GET each trends route makes.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when none is configured. Reddit rejects Go's default one.
const DefaultUserAgent = "trends-service/1.0"

// maxErrorBody caps how much of a failed response is kept for logging.
const maxErrorBody = 512

// ErrInvalidJSON is returned by GetJSON when the upstream body does not parse.
var ErrInvalidJSON = errors.New("upstream returned invalid json")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream request failed: url=%s status=%d", e.URL, e.Status)
}

// Client fetches upstream documents. It never retries.
type Client struct {
	hc        *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient creates a new client. If httpClient is nil, one without a timeout is used.
func NewClient(httpClient *http.Client, userAgent string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{hc: httpClient, userAgent: userAgent, logger: logger}
}

// Get issues one GET and returns the full body of a 2xx response.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	c.logger.Debug("upstream request", "url", url, "err", err, "latency", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// include a bit of the body for debugging
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{URL: url, Status: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream read body: %w", err)
	}
	return body, nil
}

// GetJSON is Get plus a check that the body is a well-formed JSON document.
// The bytes are returned untouched.
func (c *Client) GetJSON(ctx context.Context, url string) (json.RawMessage, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: url=%s", ErrInvalidJSON, url)
	}
	return json.RawMessage(body), nil
}
