package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsfox/internal/domain/entity"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsfox.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		expectError bool
		errorMsg    string
		validate    func(*testing.T, *Config)
	}{
		{
			name: "gnews with topic override",
			configYAML: `provider:
  kind: gnews
  language: de
  timeout: 5s
  rate_limit:
    requests_per_second: 2
    burst: 4
  topics:
    general: breaking-news
`,
			validate: func(t *testing.T, c *Config) {
				if c.Provider.Language != "de" {
					t.Errorf("expected language 'de', got %q", c.Provider.Language)
				}
				if c.Provider.Timeout != 5*time.Second {
					t.Errorf("expected timeout 5s, got %v", c.Provider.Timeout)
				}
				if got := c.Provider.Topic(entity.CategoryGeneral); got != "breaking-news" {
					t.Errorf("expected topic override, got %q", got)
				}
				if got := c.Provider.Topic(entity.CategoryScience); got != "science" {
					t.Errorf("expected identity topic, got %q", got)
				}
				// 未指定項目はデフォルトのまま
				if c.Provider.BaseURL != "https://gnews.io/api/v4" {
					t.Errorf("expected default base_url, got %q", c.Provider.BaseURL)
				}
			},
		},
		{
			name: "rss feeds",
			configYAML: `provider:
  kind: rss
  feeds:
    technology:
      - https://93.184.216.34/tech.xml
`,
			validate: func(t *testing.T, c *Config) {
				if len(c.Provider.FeedsFor(entity.CategoryTechnology)) != 1 {
					t.Errorf("expected one technology feed")
				}
			},
		},
		{
			name:        "unknown kind",
			configYAML:  "provider:\n  kind: bing\n",
			expectError: true,
			errorMsg:    "unknown provider kind",
		},
		{
			name:        "rss without feeds",
			configYAML:  "provider:\n  kind: rss\n",
			expectError: true,
			errorMsg:    "feeds are required",
		},
		{
			name:        "rss feed on private network",
			configYAML:  "provider:\n  kind: rss\n  feeds:\n    science:\n      - http://10.0.0.1/rss\n",
			expectError: true,
			errorMsg:    "private network",
		},
		{
			name:        "unknown topic category",
			configYAML:  "provider:\n  topics:\n    politics: nation\n",
			expectError: true,
			errorMsg:    "unknown category",
		},
		{
			name:        "invalid yaml",
			configYAML:  "provider: [",
			expectError: true,
			errorMsg:    "failed to parse config",
		},
		{
			name:        "non-positive jwt expiry",
			configYAML:  "security:\n  jwt:\n    expiry_hours: 0\n",
			expectError: true,
			errorMsg:    "expiry_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.configYAML))
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.Kind != ProviderGNews {
		t.Errorf("expected default kind gnews, got %q", cfg.Provider.Kind)
	}
	if cfg.Security.JWTExpiry() != 24*time.Hour {
		t.Errorf("expected 24h expiry, got %v", cfg.Security.JWTExpiry())
	}
}

func TestSecrets_FromEnv(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "k-123")
	t.Setenv("JWT_SECRET", "s-456")
	cfg := Default()

	if cfg.Provider.APIKey() != "k-123" {
		t.Errorf("expected api key from env")
	}
	if cfg.Security.JWTSecret() != "s-456" {
		t.Errorf("expected jwt secret from env")
	}
}
