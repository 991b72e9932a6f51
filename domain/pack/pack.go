// Package pack provides types for reusable tool collections.
package pack

import (
	"fmt"
	"slices"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// Pack is a named, versioned collection of related tools.
type Pack struct {
	// Name is the unique identifier for the pack.
	Name string

	// Description explains what the pack provides.
	Description string

	// Version is the semantic version of the pack.
	Version string

	// Tools is the collection of tools in this pack, in registration order.
	Tools []tool.Tool

	// Metadata holds additional pack information.
	Metadata map[string]string
}

// ToolNames returns the names of all tools in the pack.
func (p *Pack) ToolNames() []string {
	names := make([]string, len(p.Tools))
	for i, t := range p.Tools {
		names[i] = t.Name()
	}
	return names
}

// GetTool returns a tool by name from the pack.
func (p *Pack) GetTool(name string) (tool.Tool, bool) {
	for _, t := range p.Tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Selection chooses which pack tools get installed. An empty Enabled list
// means every tool; Disabled is applied afterwards.
type Selection struct {
	Enabled  []string
	Disabled []string
}

// Select returns the pack tools chosen by s, in pack order. Names that the
// pack does not define fail with ErrUnknownTool.
func (p *Pack) Select(s Selection) ([]tool.Tool, error) {
	for _, name := range slices.Concat(s.Enabled, s.Disabled) {
		if _, ok := p.GetTool(name); !ok {
			return nil, fmt.Errorf("%w: %s in pack %s", ErrUnknownTool, name, p.Name)
		}
	}

	selected := make([]tool.Tool, 0, len(p.Tools))
	for _, t := range p.Tools {
		if len(s.Enabled) > 0 && !slices.Contains(s.Enabled, t.Name()) {
			continue
		}
		if slices.Contains(s.Disabled, t.Name()) {
			continue
		}
		selected = append(selected, t)
	}
	return selected, nil
}

// Builder provides a fluent API for constructing packs.
type Builder struct {
	pack *Pack
}

// NewBuilder creates a new pack builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		pack: &Pack{
			Name:     name,
			Tools:    make([]tool.Tool, 0),
			Metadata: make(map[string]string),
		},
	}
}

// WithDescription sets the pack description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.pack.Description = desc
	return b
}

// WithVersion sets the pack version.
func (b *Builder) WithVersion(version string) *Builder {
	b.pack.Version = version
	return b
}

// AddTools adds tools to the pack.
func (b *Builder) AddTools(tools ...tool.Tool) *Builder {
	b.pack.Tools = append(b.pack.Tools, tools...)
	return b
}

// WithMetadata adds metadata to the pack.
func (b *Builder) WithMetadata(key, value string) *Builder {
	b.pack.Metadata[key] = value
	return b
}

// Build returns the constructed pack. Duplicate tool names fail with
// ErrInvalidPack.
func (b *Builder) Build() (*Pack, error) {
	if b.pack.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPack)
	}
	seen := make(map[string]struct{}, len(b.pack.Tools))
	for _, t := range b.pack.Tools {
		if _, dup := seen[t.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate tool %s", ErrInvalidPack, t.Name())
		}
		seen[t.Name()] = struct{}{}
	}
	return b.pack, nil
}

// MustBuild returns the constructed pack or panics.
func (b *Builder) MustBuild() *Pack {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
