package provider

import (
	"fmt"
	"net/http"

	"newsfox/internal/config"
	"newsfox/internal/usecase/headline"
)

// New builds the configured provider adapter wrapped with the circuit breaker
// and instrumentation. A nil client gets NewHTTPClient(cfg.Timeout).
func New(cfg config.ProviderConfig, client *http.Client) (headline.Provider, error) {
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}

	var base headline.Provider
	switch cfg.Kind {
	case config.ProviderGNews:
		base = NewGNews(cfg, client)
	case config.ProviderNewsAPI:
		base = NewNewsAPI(cfg, client)
	case config.ProviderRSS:
		base = NewRSS(cfg, client)
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
	return WithInstrumentation(WithBreaker(base)), nil
}
