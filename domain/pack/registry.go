package pack

import "github.com/felixgeelhaar/agent-fs/domain/tool"

// Registry manages a collection of packs.
type Registry interface {
	// Register adds a pack to the registry.
	Register(pack *Pack) error

	// Get retrieves a pack by name.
	Get(name string) (*Pack, bool)

	// List returns all registered packs.
	List() []*Pack

	// Unregister removes a pack from the registry.
	Unregister(name string) error

	// Install registers the selected tools of a pack into a tool registry.
	Install(name string, toolReg tool.Registry, sel Selection) error
}
