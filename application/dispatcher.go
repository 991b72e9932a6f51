// Package application wires tool lookup, middleware and guarded execution
// into a single call path shared by the MCP server and the CLI.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	inframw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
	"github.com/felixgeelhaar/agent-fs/infrastructure/resilience"
)

// ErrNoRegistry indicates the dispatcher was built without a tool registry.
var ErrNoRegistry = errors.New("registry is required")

// Dispatcher routes tool calls by name through the middleware chain to the
// resilient executor.
type Dispatcher struct {
	registry   tool.Registry
	executor   *resilience.Executor
	middleware *middleware.Registry
	newCallID  func() string
	now        func() time.Time
}

// DispatcherConfig contains configuration for the dispatcher.
type DispatcherConfig struct {
	Registry   tool.Registry
	Executor   *resilience.Executor
	Middleware *middleware.Registry
	// Tracing configures the tracing middleware of the default chain. A
	// config with neither TracerName nor Tracer set uses DefaultTracingConfig.
	Tracing inframw.TracingConfig
	// RateLimit adds a rate limit as the innermost middleware of the
	// default chain. Nil means no limit.
	RateLimit *inframw.RateLimitConfig
	// CallIDs generates call identifiers. Defaults to random UUIDs.
	CallIDs func() string
}

// NewDispatcher creates a new dispatcher with the given configuration.
func NewDispatcher(config DispatcherConfig) (*Dispatcher, error) {
	if config.Registry == nil {
		return nil, ErrNoRegistry
	}

	d := &Dispatcher{
		registry:   config.Registry,
		executor:   config.Executor,
		middleware: config.Middleware,
		newCallID:  config.CallIDs,
		now:        time.Now,
	}

	if d.executor == nil {
		d.executor = resilience.NewDefaultExecutor()
	}
	if d.middleware == nil {
		tracing := config.Tracing
		if tracing.TracerName == "" && tracing.Tracer == nil {
			tracing = inframw.DefaultTracingConfig()
		}
		d.middleware = DefaultMiddleware(tracing)
		if config.RateLimit != nil {
			d.middleware.Use(inframw.RateLimit(*config.RateLimit))
		}
	}
	if d.newCallID == nil {
		d.newCallID = func() string { return uuid.New().String() }
	}

	return d, nil
}

// DefaultMiddleware returns the standard chain, outermost first:
// recovery, tracing, logging, input validation.
func DefaultMiddleware(tracing inframw.TracingConfig) *middleware.Registry {
	return middleware.NewRegistry(
		inframw.Recovery(),
		inframw.Tracing(tracing),
		inframw.Logging(inframw.LoggingConfig{}),
		inframw.Validation(inframw.DefaultValidationConfig()),
	)
}

// Call executes the named tool with input. Unknown names fail with
// tool.ErrToolNotFound before any middleware runs.
func (d *Dispatcher) Call(ctx context.Context, name string, input json.RawMessage, source string) (tool.Result, error) {
	t, ok := d.registry.Get(name)
	if !ok {
		return tool.Result{}, fmt.Errorf("%w: %s", tool.ErrToolNotFound, name)
	}

	execCtx := &middleware.ExecutionContext{
		CallID:    d.newCallID(),
		Tool:      t,
		Input:     input,
		Source:    source,
		StartedAt: d.now(),
	}

	core := func(ctx context.Context, ec *middleware.ExecutionContext) (tool.Result, error) {
		return d.executor.Execute(ctx, ec.Tool, ec.Input)
	}

	return d.middleware.Then(core)(ctx, execCtx)
}

// Tools returns the registered tools sorted by name.
func (d *Dispatcher) Tools() []tool.Tool {
	return d.registry.List()
}

// Registry returns the tool registry.
func (d *Dispatcher) Registry() tool.Registry {
	return d.registry
}
