package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsfox/internal/domain/entity"
)

func fast(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func upstream(status int) error {
	return &entity.ProviderError{Provider: "gnews", Kind: entity.ProviderErrStatus, StatusCode: status}
}

func TestWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{name: "first call succeeds", errs: []error{nil}, wantCalls: 1},
		{name: "succeeds after 503s", errs: []error{upstream(503), upstream(503), nil}, wantCalls: 3},
		{name: "429 retried", errs: []error{upstream(429), nil}, wantCalls: 2},
		{name: "401 not retried", errs: []error{upstream(401)}, wantCalls: 1, wantErr: true},
		{name: "gives up", errs: []error{upstream(500), upstream(500), upstream(500), upstream(500)}, wantCalls: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithBackoff(context.Background(), fast(3), func() error {
				e := tt.errs[calls]
				calls++
				return e
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.Error(t, err)
				_, ok := entity.AsProviderError(err)
				assert.True(t, ok, "provider error must stay in the chain")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWithBackoff_ExhaustedMessage(t *testing.T) {
	err := WithBackoff(context.Background(), fast(2), func() error { return upstream(502) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retry attempts (2) exceeded")
}

func TestWithBackoff_ContextCanceledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- WithBackoff(ctx, cfg, func() error {
			calls++
			return upstream(503)
		})
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(2 * time.Second):
		t.Fatal("WithBackoff did not return after cancel")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), false},
		{"provider network", &entity.ProviderError{Kind: entity.ProviderErrNetwork}, true},
		{"provider 503", upstream(503), true},
		{"provider 404", upstream(404), false},
		{"provider decode", &entity.ProviderError{Kind: entity.ProviderErrDecode}, false},
		{"provider unavailable", &entity.ProviderError{Kind: entity.ProviderErrUnavailable}, false},
		{"webhook 502", &HTTPError{StatusCode: http.StatusBadGateway}, true},
		{"webhook 429", &HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"webhook 408", &HTTPError{StatusCode: http.StatusRequestTimeout}, true},
		{"webhook 400", &HTTPError{StatusCode: http.StatusBadRequest}, false},
		{"net timeout", timeoutErr{}, true},
		{"conn refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestConfigs(t *testing.T) {
	p, w := ProviderConfig(), WarmConfig()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.LessOrEqual(t, p.MaxDelay, 2*time.Second)
	assert.Greater(t, w.MaxAttempts, p.MaxAttempts)
	assert.Greater(t, w.MaxDelay, p.MaxDelay)
}

func TestHTTPError_Error(t *testing.T) {
	assert.Equal(t, "HTTP 503: unavailable", (&HTTPError{StatusCode: 503, Message: "unavailable"}).Error())
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for range 50 {
		got := addJitter(base, 0.1)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, 110*time.Millisecond)
	}
	assert.Equal(t, base, addJitter(base, 0))
	assert.LessOrEqual(t, addJitter(base, 5), 200*time.Millisecond)
}
