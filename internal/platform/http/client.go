package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Client wraps an HTTP client with rate limiting and retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	maxElapsed time.Duration
}

// ClientOptions holds options for creating a new Client
type ClientOptions struct {
	Timeout         time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new HTTP client with rate limiting
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		maxElapsed: opts.MaxRetryTimeout,
	}
}

// Do performs the request with rate limiting and exponential-backoff retries.
// The response body is open on success; the caller closes it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			statusErr := &StatusError{StatusCode: resp.StatusCode}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// Client errors won't heal on retry.
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}

// StatusError represents an error due to a non-200 HTTP status code
type StatusError struct {
	StatusCode int
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return "non-200 status code: " + http.StatusText(e.StatusCode)
}
