// Package transmit wraps outbound provider HTTP calls with a bounded
// retry policy: a per-attempt timeout, a fixed attempt budget, and linear
// backoff between attempts.
package transmit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultRetries = 3
	DefaultTimeout = 30 * time.Second
)

type Client struct {
	http    *http.Client
	retries int
	timeout time.Duration
}

func New(timeout time.Duration, retries int) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retries <= 0 {
		retries = DefaultRetries
	}
	return &Client{
		http:    &http.Client{},
		retries: retries,
		timeout: timeout,
	}
}

// Post sends the body with the given headers, retrying on transport
// errors and 5xx responses. Backoff grows linearly with the attempt
// number. Non-retryable statuses (4xx) fail immediately.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		data, retryable, err := c.post(ctx, url, body, headers)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		if attempt < c.retries {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("server responded with %d: %s", resp.StatusCode, string(data))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("server responded with %d: %s", resp.StatusCode, string(data))
	}

	return data, false, nil
}
