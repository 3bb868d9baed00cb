package provider

import (
	"fmt"

	"github.com/filterize/credengine/internal/model"
)

// Registry holds named providers in registration order. Adding a backend
// means registering an implementation here, not editing a dispatch switch.
type Registry struct {
	order     []string
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. Re-registering a name replaces the
// implementation but keeps its original position.
func (r *Registry) Register(p Provider) {
	name := p.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names returns provider names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// BuildRegistry registers every provider the configuration enables.
// Providers with missing credentials are left out; the router treats an
// empty registry as total fallback to local detectors.
func BuildRegistry(cfg model.ProvidersConfig) (*Registry, error) {
	reg := NewRegistry()

	if cfg.OpenAI.APIKey != "" {
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("openai provider: %w", err)
		}
		reg.Register(p)
	}

	if cfg.Anthropic.APIKey != "" {
		p, err := NewAnthropicProvider(cfg.Anthropic)
		if err != nil {
			return nil, fmt.Errorf("anthropic provider: %w", err)
		}
		reg.Register(p)
	}

	if cfg.Ollama.BaseURL != "" {
		p, err := NewOllamaProvider(cfg.Ollama)
		if err != nil {
			return nil, fmt.Errorf("ollama provider: %w", err)
		}
		reg.Register(p)
	}

	return reg, nil
}
