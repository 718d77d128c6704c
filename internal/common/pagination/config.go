// Package pagination parses and validates page parameters for the headline
// endpoints and provides the page arithmetic shared with provider adapters.
package pagination

import (
	"newsfox/internal/domain/entity"
	pkgconfig "newsfox/pkg/config"
)

// Config holds pagination settings.
type Config struct {
	DefaultPage int // page served when ?page is absent
	PageSize    int // articles per page; fixed by the provider contract
	// MaxPage rejects deeper pages to protect the provider quota. 0 disables it.
	MaxPage int
}

// DefaultConfig returns page=1, size=entity.PageSize and no page cap.
func DefaultConfig() Config {
	return Config{
		DefaultPage: 1,
		PageSize:    entity.PageSize,
		MaxPage:     0,
	}
}

// LoadFromEnv reads PAGINATION_MAX_PAGE. Page size is not configurable.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	cfg.MaxPage = pkgconfig.GetEnvInt("PAGINATION_MAX_PAGE", 0)
	if cfg.MaxPage < 0 {
		cfg.MaxPage = 0
	}
	return cfg
}
