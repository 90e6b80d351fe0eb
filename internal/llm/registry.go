package llm

import "github.com/lorenzotomasdiez/quorum/internal/config"

// Registry holds the configured participant adapters in a stable order.
type Registry struct {
	clients []Client
}

// NewRegistry builds adapters for every provider in cfg and keeps the ones
// with usable credentials. Order is fixed so the "first participant" used
// for synthesis is deterministic.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	order := []string{config.ProviderOpenAI, config.ProviderGemini, config.ProviderGrok, config.ProviderAnthropic}

	var clients []Client
	for _, id := range order {
		p, ok := cfg.Providers[id]
		if !ok {
			continue
		}
		spec, err := cfg.ModelFor(id)
		if err != nil {
			return nil, err
		}
		var c Client
		switch id {
		case config.ProviderOpenAI:
			c = NewOpenAI(p, spec, cfg.Debate)
		case config.ProviderGemini:
			c = NewGemini(p, spec, cfg.Debate)
		case config.ProviderGrok:
			c = NewGrok(p, spec, cfg.Debate)
		case config.ProviderAnthropic:
			c = NewAnthropic(p, spec, cfg.Debate)
		}
		if c.Configured() {
			clients = append(clients, c)
		}
	}
	return &Registry{clients: clients}, nil
}

// NewRegistryFromClients wraps pre-built clients; used by tests and by
// callers that assemble their own participants.
func NewRegistryFromClients(clients []Client) *Registry {
	return &Registry{clients: clients}
}

// Clients returns all configured participants.
func (r *Registry) Clients() []Client {
	return r.clients
}

// Select restricts the participant set to the given ids. A selection naming
// fewer than two known participants falls back to the full configured set,
// since a debate needs at least two perspectives.
func (r *Registry) Select(ids []string) []Client {
	if len(ids) < 2 {
		return r.clients
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var selected []Client
	for _, c := range r.clients {
		if wanted[c.ID()] {
			selected = append(selected, c)
		}
	}
	if len(selected) < 2 {
		return r.clients
	}
	return selected
}
