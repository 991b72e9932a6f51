package application

import (
	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	inframw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
	"github.com/felixgeelhaar/agent-fs/infrastructure/resilience"
)

// Option configures the dispatcher.
type Option func(*DispatcherConfig)

// WithRegistry sets the tool registry.
func WithRegistry(r tool.Registry) Option {
	return func(c *DispatcherConfig) {
		c.Registry = r
	}
}

// WithExecutor sets the resilient executor.
func WithExecutor(e *resilience.Executor) Option {
	return func(c *DispatcherConfig) {
		c.Executor = e
	}
}

// WithMiddleware sets a custom middleware registry.
// If not set, the dispatcher uses DefaultMiddleware.
func WithMiddleware(m *middleware.Registry) Option {
	return func(c *DispatcherConfig) {
		c.Middleware = m
	}
}

// WithTracing configures the tracing middleware of the default chain.
func WithTracing(cfg inframw.TracingConfig) Option {
	return func(c *DispatcherConfig) {
		c.Tracing = cfg
	}
}

// WithRateLimit limits the call rate of the default chain.
func WithRateLimit(cfg inframw.RateLimitConfig) Option {
	return func(c *DispatcherConfig) {
		c.RateLimit = &cfg
	}
}

// WithCallIDs sets the call identifier generator.
func WithCallIDs(fn func() string) Option {
	return func(c *DispatcherConfig) {
		c.CallIDs = fn
	}
}

// NewDispatcherWithOptions creates a dispatcher with functional options.
func NewDispatcherWithOptions(opts ...Option) (*Dispatcher, error) {
	config := DispatcherConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return NewDispatcher(config)
}
