// Package config loads the newsfox YAML configuration: which headline provider
// to use and how to reach it, the page cache, and JWT authentication settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"newsfox/internal/domain/entity"
)

// Provider kinds.
const (
	ProviderGNews   = "gnews"
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// Config represents the application configuration file.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
	Security SecurityConfig `yaml:"security"`
}

// ProviderConfig selects and configures the headline provider adapter.
type ProviderConfig struct {
	Kind      string              `yaml:"kind"`
	BaseURL   string              `yaml:"base_url"`
	APIKeyEnv string              `yaml:"api_key_env"`
	Language  string              `yaml:"language"`
	Country   string              `yaml:"country"`
	Timeout   time.Duration       `yaml:"timeout"`
	RateLimit RateLimitConfig     `yaml:"rate_limit"`
	Topics    map[string]string   `yaml:"topics"`
	Feeds     map[string][]string `yaml:"feeds"`
}

// RateLimitConfig throttles outbound provider requests.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CacheConfig configures the Redis page cache. An empty RedisURLEnv value disables it.
type CacheConfig struct {
	RedisURLEnv string        `yaml:"redis_url_env"`
	TTL         time.Duration `yaml:"ttl"`
}

// SecurityConfig configures bearer token verification.
type SecurityConfig struct {
	JWT struct {
		SecretEnv   string `yaml:"secret_env"`
		Issuer      string `yaml:"issuer"`
		ExpiryHours int    `yaml:"expiry_hours"`
	} `yaml:"jwt"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Provider: ProviderConfig{
			Kind:      ProviderGNews,
			BaseURL:   "https://gnews.io/api/v4",
			APIKeyEnv: "NEWS_API_KEY",
			Language:  "en",
			Timeout:   10 * time.Second,
			RateLimit: RateLimitConfig{RequestsPerSecond: 1, Burst: 3},
		},
		Cache: CacheConfig{RedisURLEnv: "REDIS_URL", TTL: 5 * time.Minute},
	}
	cfg.Security.JWT.SecretEnv = "JWT_SECRET"
	cfg.Security.JWT.Issuer = "newsfox"
	cfg.Security.JWT.ExpiryHours = 24
	return cfg
}

// Load reads path on top of Default. A missing file yields the defaults.
// The path parameter is expected to come from a trusted source (flag or env).
func Load(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 -- path is provided by trusted source (CLI arg or env), not user input
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	p := c.Provider
	switch p.Kind {
	case ProviderGNews, ProviderNewsAPI:
		if p.BaseURL == "" {
			return fmt.Errorf("provider base_url is required for %s", p.Kind)
		}
		if p.APIKeyEnv == "" {
			return fmt.Errorf("provider api_key_env is required for %s", p.Kind)
		}
	case ProviderRSS:
		if len(p.Feeds) == 0 {
			return fmt.Errorf("provider feeds are required for rss")
		}
		for cat, urls := range p.Feeds {
			if !entity.Category(cat).IsValid() {
				return fmt.Errorf("feeds: unknown category %q", cat)
			}
			for _, u := range urls {
				if err := entity.ValidateFeedURL(u); err != nil {
					return fmt.Errorf("feeds.%s: %w", cat, err)
				}
			}
		}
	default:
		return fmt.Errorf("unknown provider kind %q", p.Kind)
	}

	for cat := range p.Topics {
		if !entity.Category(cat).IsValid() {
			return fmt.Errorf("topics: unknown category %q", cat)
		}
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	if p.RateLimit.RequestsPerSecond < 0 || p.RateLimit.Burst < 0 {
		return fmt.Errorf("provider rate_limit must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	if c.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if c.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	return nil
}

// APIKey returns the provider API key from the configured environment variable.
func (p ProviderConfig) APIKey() string {
	return os.Getenv(p.APIKeyEnv)
}

// Topic maps a canonical category to the provider's topic name.
func (p ProviderConfig) Topic(c entity.Category) string {
	if t, ok := p.Topics[string(c)]; ok && t != "" {
		return t
	}
	return string(c)
}

// FeedsFor returns the RSS feed URLs configured for c.
func (p ProviderConfig) FeedsFor(c entity.Category) []string {
	return p.Feeds[string(c)]
}

// JWTSecret returns the signing secret from the configured environment variable.
func (s SecurityConfig) JWTSecret() string {
	return os.Getenv(s.JWT.SecretEnv)
}

// JWTExpiry returns the token lifetime.
func (s SecurityConfig) JWTExpiry() time.Duration {
	return time.Duration(s.JWT.ExpiryHours) * time.Hour
}
