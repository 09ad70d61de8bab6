package provider

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/petasbytes/repostats-agent/internal/config"
)

// New builds the provider named by cfg.Provider. base may be nil.
func New(cfg config.Config, base http.RoundTripper, log *slog.Logger) (Provider, error) {
	hc := NewHTTPClient(base, cfg.RequestTimeout.Duration, log)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, hc), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.BaseURL, cfg.Model, hc), nil
	default:
		return nil, fmt.Errorf("provider %q: %w", cfg.Provider, config.ErrInvalidSetting)
	}
}
