// Package mcp exposes the dispatcher's tools over the Model Context Protocol
// using github.com/felixgeelhaar/mcp-go.
package mcp

import (
	mcpgo "github.com/felixgeelhaar/mcp-go"
)

// Re-export transport option types from mcp-go.
type (
	// ServeOption configures stdio serving.
	ServeOption = mcpgo.ServeOption

	// HTTPOption configures HTTP transport.
	HTTPOption = mcpgo.HTTPOption
)

// Transport names accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)
