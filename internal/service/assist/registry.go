package assist

import (
	"fmt"

	domainassist "inkstone/internal/domain/services/assist"
)

// Registry routes a model name to the provider that serves it.
type Registry struct {
	providers []domainassist.Provider
}

// NewRegistry creates a registry over the given providers. Order matters:
// the first provider claiming a model wins.
func NewRegistry(providers ...domainassist.Provider) *Registry {
	return &Registry{providers: providers}
}

// ProviderFor returns the provider serving the given model.
func (r *Registry) ProviderFor(model string) (domainassist.Provider, error) {
	for _, p := range r.providers {
		if p.SupportsModel(model) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no provider supports model '%s'", model)
}
