package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"newsfox/internal/resilience/retry"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// webhook posts JSON payloads to one URL, throttled and retried.
type webhook struct {
	name    string
	url     string
	client  *http.Client
	limiter *rate.Limiter
	retry   retry.Config
}

func newWebhook(name, url string, timeout time.Duration, rps float64, burst int) *webhook {
	return &webhook{
		name:    name,
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		retry: retry.Config{
			MaxAttempts:    3,
			InitialDelay:   2 * time.Second,
			MaxDelay:       10 * time.Second,
			Multiplier:     2.0,
			JitterFraction: 0.1,
		},
	}
}

// send waits for a rate-limit token and posts payload. 5xx, 408 and 429
// responses are retried; other 4xx fail immediately.
func (w *webhook) send(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal payload: %w", w.name, err)
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limiter: %w", w.name, err)
	}

	err = retry.WithBackoff(ctx, w.retry, func() error {
		return w.post(ctx, body)
	})
	if err != nil {
		slog.Error("webhook notification failed",
			slog.String("notifier", w.name),
			slog.Any("error", err))
		return fmt.Errorf("%s: %w", w.name, err)
	}
	slog.Info("webhook notification sent", slog.String("notifier", w.name))
	return nil
}

func (w *webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &retry.HTTPError{StatusCode: resp.StatusCode, Message: string(msg)}
}

// truncate shortens s to at most n bytes, marking the cut with "...".
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
