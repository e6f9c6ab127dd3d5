package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"newsroom/internal/resilience/retry"
)

// webhook posts JSON payloads to one chat webhook URL.
type webhook struct {
	service string
	url     string
	client  *http.Client
	limiter *RateLimiter
	retry   retry.Config
}

// deliver waits for a rate limit token and posts payload, retrying
// transient failures.
func (w *webhook) deliver(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", w.service, err)
	}
	if err := w.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("%s rate limiter: %w", w.service, err)
	}
	return retry.WithBackoff(ctx, w.retry, func() error {
		return w.post(ctx, body)
	})
}

func (w *webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", w.service, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		// url.Error carries the webhook URL, token included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%s webhook request: %w", w.service, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("%s webhook: %s", w.service, strings.TrimSpace(string(msg))),
	}
}
