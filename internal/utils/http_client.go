package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnexpectedStatus is returned by Fetch for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// ClientOption configures an HTTPClient.
type ClientOption func(*resty.Client)

// WithTimeout caps every request made by the client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithRetries retries failed requests up to n times with resty's backoff.
func WithRetries(n int) ClientOption {
	return func(c *resty.Client) {
		c.SetRetryCount(n).
			SetRetryWaitTime(100 * time.Millisecond).
			SetRetryMaxWaitTime(time.Second)
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *resty.Client) {
		c.SetHeader("User-Agent", ua)
	}
}

// NewHTTPClient creates an independent client with its own connection pool.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(5 * time.Second))
//	body, err := client.Fetch(ctx, "https://example.com/openapi.yaml")
func NewHTTPClient(opts ...ClientOption) *HTTPClient {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPClient{Client: c}
}

// Fetch GETs url and returns the response body. Non-2xx responses are
// reported as ErrUnexpectedStatus.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrUnexpectedStatus, url, resp.Status())
	}

	return resp.Body(), nil
}
