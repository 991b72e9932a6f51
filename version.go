// Package agentfs provides the version information for agent-fs.
package agentfs

// Version is the current version of agent-fs.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
