package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	mcpserver "github.com/felixgeelhaar/mcp-go/server"

	"github.com/felixgeelhaar/agent-fs/application"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// SourceMCP tags calls that arrive over MCP.
const SourceMCP = "mcp"

var (
	// ErrNoDispatcher indicates the server was configured without a dispatcher.
	ErrNoDispatcher = errors.New("mcp server requires a dispatcher")

	// ErrUnknownTransport indicates a transport other than stdio or http.
	ErrUnknownTransport = errors.New("unknown mcp transport")
)

// Server serves the dispatcher's tools over MCP.
type Server struct {
	srv        *mcpgo.Server
	dispatcher *application.Dispatcher
	info       mcpgo.ServerInfo
	tools      []string
}

// ServerConfig configures an MCP server.
type ServerConfig struct {
	// Name is the server name reported to clients.
	Name string

	// Version is the server version.
	Version string

	// Description is an optional server description.
	Description string

	// Instructions provides usage instructions for clients.
	Instructions string

	// Dispatcher executes tool calls. Required.
	Dispatcher *application.Dispatcher
}

// NewServer creates an MCP server with one MCP tool per registered tool.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Dispatcher == nil {
		return nil, ErrNoDispatcher
	}

	info := mcpgo.ServerInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: cfg.Description,
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	var opts []mcpgo.Option
	if cfg.Instructions != "" {
		opts = append(opts, mcpgo.WithInstructions(cfg.Instructions))
	}

	s := &Server{
		srv:        mcpgo.NewServer(info, opts...),
		dispatcher: cfg.Dispatcher,
		info:       info,
	}
	for _, t := range cfg.Dispatcher.Tools() {
		s.registerTool(t)
	}
	return s, nil
}

func (s *Server) registerTool(t tool.Tool) {
	name := t.Name()
	s.srv.Tool(name).
		Description(describe(t)).
		Handler(func(ctx context.Context, input json.RawMessage) (string, error) {
			return s.CallTool(ctx, name, input)
		})
	s.tools = append(s.tools, name)
}

// describe appends the input schema to the description so clients see the
// parameter names and defaults.
func describe(t tool.Tool) string {
	schema := t.InputSchema()
	if schema.IsEmpty() {
		return t.Description()
	}
	return fmt.Sprintf("%s\n\nInput schema: %s", t.Description(), schema.Raw())
}

// CallTool runs one tool through the dispatcher and returns its JSON output.
func (s *Server) CallTool(ctx context.Context, name string, input json.RawMessage) (string, error) {
	result, err := s.dispatcher.Call(ctx, name, input, SourceMCP)
	if err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", result.Error
	}
	return result.OutputString(), nil
}

// Tools returns the names of the registered MCP tools, in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Info returns the server metadata.
func (s *Server) Info() mcpgo.ServerInfo {
	return s.info
}

// Server returns the underlying mcp-go server.
func (s *Server) Server() *mcpgo.Server {
	return s.srv
}

// Use adds mcp-go middleware to the server.
func (s *Server) Use(middlewares ...mcpserver.Middleware) {
	s.srv.Use(middlewares...)
}

// ServeStdio runs the server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context, opts ...ServeOption) error {
	return mcpgo.ServeStdio(ctx, s.srv, opts...)
}

// ServeHTTP runs the server over HTTP.
func (s *Server) ServeHTTP(ctx context.Context, addr string, opts ...HTTPOption) error {
	return mcpgo.ServeHTTP(ctx, s.srv, addr, opts...)
}

// Serve runs the named transport until ctx is done. addr is used by http only.
func (s *Server) Serve(ctx context.Context, transport, addr string) error {
	switch transport {
	case TransportStdio, "":
		logging.Info().
			Add(logging.Component(SourceMCP), logging.Str("transport", TransportStdio)).
			Add(logging.Count(len(s.tools))).
			Msg("mcp server starting")
		return s.ServeStdio(ctx)
	case TransportHTTP:
		logging.Info().
			Add(logging.Component(SourceMCP), logging.Str("transport", TransportHTTP), logging.Str("address", addr)).
			Add(logging.Count(len(s.tools))).
			Msg("mcp server starting")
		return s.ServeHTTP(ctx, addr)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTransport, transport)
	}
}
