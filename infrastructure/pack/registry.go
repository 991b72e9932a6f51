// Package pack provides the pack registry implementation.
package pack

import (
	"slices"
	"strings"
	"sync"

	"github.com/felixgeelhaar/agent-fs/domain/pack"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// Registry is an in-memory pack registry.
type Registry struct {
	packs map[string]*pack.Pack
	mu    sync.RWMutex
}

// NewRegistry creates a new pack registry.
func NewRegistry() *Registry {
	return &Registry{
		packs: make(map[string]*pack.Pack),
	}
}

// Register adds a pack to the registry.
func (r *Registry) Register(p *pack.Pack) error {
	if p == nil || p.Name == "" {
		return pack.ErrInvalidPack
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packs[p.Name]; exists {
		return pack.ErrPackExists
	}

	r.packs[p.Name] = p
	return nil
}

// Get retrieves a pack by name.
func (r *Registry) Get(name string) (*pack.Pack, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.packs[name]
	return p, ok
}

// List returns all registered packs sorted by name.
func (r *Registry) List() []*pack.Pack {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*pack.Pack, 0, len(r.packs))
	for _, p := range r.packs {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b *pack.Pack) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Unregister removes a pack from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packs[name]; !exists {
		return pack.ErrPackNotFound
	}

	delete(r.packs, name)
	return nil
}

// Install registers the tools a selection keeps from the named pack.
func (r *Registry) Install(name string, toolReg tool.Registry, sel pack.Selection) error {
	r.mu.RLock()
	p, ok := r.packs[name]
	r.mu.RUnlock()

	if !ok {
		return pack.ErrPackNotFound
	}
	return InstallPack(p, toolReg, sel)
}

// InstallPack registers the selected tools of p without consulting a registry.
// Tools already present in toolReg are left in place.
func InstallPack(p *pack.Pack, toolReg tool.Registry, sel pack.Selection) error {
	if p == nil {
		return pack.ErrInvalidPack
	}

	tools, err := p.Select(sel)
	if err != nil {
		return err
	}

	for _, t := range tools {
		if toolReg.Has(t.Name()) {
			logging.Debug().
				Add(logging.Component("pack")).
				Add(logging.ToolName(t.Name())).
				Msg("tool already registered, skipping")
			continue
		}
		if err := toolReg.Register(t); err != nil {
			return err
		}
	}

	logging.Debug().
		Add(logging.Component("pack")).
		Add(logging.Str("pack", p.Name)).
		Add(logging.Count(len(tools))).
		Msg("pack installed")

	return nil
}

// Clear removes all packs from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packs = make(map[string]*pack.Pack)
}

// Len returns the number of registered packs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.packs)
}

var _ pack.Registry = (*Registry)(nil)
