// Package chainspec holds the per-network parameter table. The table is
// immutable configuration data: a Registry is built once and passed
// explicitly into the components that need it, never consulted through
// package-level mutable state.
package chainspec

import "fmt"

// Spec names one supported network and the parameters the ledger
// adapter needs to authenticate an endpoint against it.
type Spec struct {
	Name    string
	ChainID uint64
}

// builtin lists the networks supported out of the box. Additional specs
// are supplied at registry construction, not by mutating this table.
var builtin = []Spec{
	{Name: "eth-mainnet", ChainID: 1},
	{Name: "eth-sepolia", ChainID: 11155111},
	{Name: "eth-holesky", ChainID: 17000},
	{Name: "base-mainnet", ChainID: 8453},
	{Name: "arbitrum-one", ChainID: 42161},
}

// Registry maps spec names to specs. It is immutable after construction.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry builds a registry from the builtin table plus any extra
// specs. An extra spec whose name collides with an existing entry is an
// error rather than an override, so two components handed the same
// arguments always see the same table.
func NewRegistry(extra ...Spec) (*Registry, error) {
	specs := make(map[string]Spec, len(builtin)+len(extra))
	for _, s := range builtin {
		specs[s.Name] = s
	}
	for _, s := range extra {
		if s.Name == "" {
			return nil, ErrEmptyName
		}
		if _, exists := specs[s.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSpec, s.Name)
		}
		specs[s.Name] = s
	}
	return &Registry{specs: specs}, nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, error) {
	s, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownSpec, name)
	}
	return s, nil
}

// Names returns the registered spec names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	return names
}
