package provider

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"newsfox/internal/config"
	"newsfox/internal/domain/entity"
)

// testConfig returns a provider configuration pointing at srv without throttling.
func testConfig(t *testing.T, kind string, srv *httptest.Server) config.ProviderConfig {
	t.Helper()
	t.Setenv("TEST_NEWS_KEY", "secret-key")
	return config.ProviderConfig{
		Kind:      kind,
		BaseURL:   srv.URL,
		APIKeyEnv: "TEST_NEWS_KEY",
		Language:  "en",
		Timeout:   2 * time.Second,
	}
}

func testClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Second}
}

func requireKind(t *testing.T, err error, kind entity.ProviderErrorKind) *entity.ProviderError {
	t.Helper()
	require.Error(t, err)
	pe, ok := entity.AsProviderError(err)
	require.True(t, ok, "expected *entity.ProviderError, got %T: %v", err, err)
	require.Equal(t, kind, pe.Kind, "error: %v", err)
	return pe
}
