package assist

import (
	"log/slog"

	"inkstone/internal/config"
	domainassist "inkstone/internal/domain/services/assist"
)

// SetupProviders builds the provider registry from configuration. The lorem
// provider is always registered so development and tests work without API
// keys; Anthropic joins when a key is configured.
func SetupProviders(cfg *config.Config, logger *slog.Logger) (*Registry, error) {
	providers := []domainassist.Provider{}

	if cfg.AnthropicAPIKey != "" {
		anthropic, err := NewAnthropicProvider(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, err
		}
		providers = append(providers, anthropic)
	}

	providers = append(providers, NewLoremProvider())

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Info("assist providers initialized", "providers", names)

	return NewRegistry(providers...), nil
}
