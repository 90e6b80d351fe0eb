package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const maxRetries = 3

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// transport is the HTTP layer shared by all adapters: JSON POST with retry
// on 429 and 5xx responses.
type transport struct {
	httpClient  *http.Client
	backoffFunc func(attempt int) time.Duration
}

func newTransport() *transport {
	return &transport{
		httpClient:  &http.Client{},
		backoffFunc: defaultBackoff,
	}
}

// postJSON sends payload to url and returns the response body. Non-2xx
// responses that are not retryable fail immediately with the body included
// in the error message.
func (t *transport) postJSON(ctx context.Context, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := t.backoffFunc(attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := t.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reading response: %w", readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return respBody, nil
		}

		if !isRetryable(resp.StatusCode) {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
		}

		// Respect Retry-After on 429 (additional wait on top of backoff).
		if resp.StatusCode == http.StatusTooManyRequests {
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, parseErr := strconv.Atoi(ra); parseErr == nil {
					raDelay := time.Duration(secs) * time.Second
					if raDelay > 0 && t.backoffFunc(0) > 0 {
						select {
						case <-ctx.Done():
							return nil, ctx.Err()
						case <-time.After(raDelay):
						}
					}
				}
			}
		}

		lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil, lastErr
}

func isRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}
