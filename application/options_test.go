package application_test

import (
	"testing"

	"github.com/felixgeelhaar/agent-fs/application"
	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	inframw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
	"github.com/felixgeelhaar/agent-fs/infrastructure/resilience"
	"github.com/felixgeelhaar/agent-fs/infrastructure/storage/memory"
)

func TestOptions(t *testing.T) {
	t.Parallel()

	registry := memory.NewToolRegistry()
	executor := resilience.NewDefaultExecutor()
	mws := middleware.NewRegistry()
	tracing := inframw.DefaultTracingConfig()

	config := &application.DispatcherConfig{}
	for _, opt := range []application.Option{
		application.WithRegistry(registry),
		application.WithExecutor(executor),
		application.WithMiddleware(mws),
		application.WithTracing(tracing),
		application.WithRateLimit(inframw.RateLimitConfig{Rate: 5}),
		application.WithCallIDs(func() string { return "id" }),
	} {
		opt(config)
	}

	if config.Registry != registry {
		t.Error("WithRegistry should set the registry")
	}
	if config.Executor != executor {
		t.Error("WithExecutor should set the executor")
	}
	if config.Middleware != mws {
		t.Error("WithMiddleware should set the middleware")
	}
	if config.Tracing.TracerName != tracing.TracerName {
		t.Error("WithTracing should set the tracing config")
	}
	if config.RateLimit == nil || config.RateLimit.Rate != 5 {
		t.Error("WithRateLimit should set the rate limit")
	}
	if config.CallIDs == nil || config.CallIDs() != "id" {
		t.Error("WithCallIDs should set the generator")
	}
}

func TestNewDispatcherWithOptions_RequiresRegistry(t *testing.T) {
	t.Parallel()

	if _, err := application.NewDispatcherWithOptions(); err == nil {
		t.Error("NewDispatcherWithOptions() without registry should fail")
	}
}
