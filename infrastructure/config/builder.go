package config

import (
	"errors"

	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
	"github.com/felixgeelhaar/agent-fs/domain/pack"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
	inframw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
	"github.com/felixgeelhaar/agent-fs/infrastructure/observability"
	"github.com/felixgeelhaar/agent-fs/infrastructure/resilience"
)

// ErrNilConfig indicates Build was called without a configuration.
var ErrNilConfig = errors.New("configuration is nil")

// Builder turns a configuration into component settings.
type Builder struct {
	config *domainconfig.ServerConfig
}

// NewBuilder creates a new configuration builder.
func NewBuilder(config *domainconfig.ServerConfig) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the component settings derived from configuration.
type BuildResult struct {
	// Filesystem configures the fsys.FS behind the tools.
	Filesystem []fsys.Option
	// Selection picks the installed tools.
	Selection pack.Selection
	// Logging configures the default logger.
	Logging logging.Config
	// Executor configures the resilient executor.
	Executor resilience.ExecutorConfig
	// RateLimit is the call rate limit, nil when disabled.
	RateLimit *inframw.RateLimitConfig
	// Observability configures the tracer provider.
	Observability []observability.Option
	// Server holds the MCP server settings.
	Server ServerSettings
}

// ServerSettings are the MCP server settings.
type ServerSettings struct {
	Name         string
	Transport    string
	Address      string
	Instructions string
}

// Build derives the component settings.
func (b *Builder) Build() (*BuildResult, error) {
	if b.config == nil {
		return nil, ErrNilConfig
	}
	c := b.config

	return &BuildResult{
		Filesystem: buildFilesystem(c.Filesystem),
		Selection: pack.Selection{
			Enabled:  c.Tools.Enabled,
			Disabled: c.Tools.Disabled,
		},
		Logging: logging.Config{
			Level:  c.Logging.Level,
			Format: c.Logging.Format,
		},
		Executor:      buildExecutor(c.Resilience),
		RateLimit:     buildRateLimit(c.Resilience.RateLimit),
		Observability: buildObservability(c),
		Server: ServerSettings{
			Name:         c.Name,
			Transport:    c.Server.Transport,
			Address:      c.Server.Address,
			Instructions: c.Server.Instructions,
		},
	}, nil
}

func buildFilesystem(c domainconfig.FilesystemConfig) []fsys.Option {
	opts := []fsys.Option{
		fsys.WithBaseDir(c.BaseDir),
		fsys.WithAtomicRewrite(c.AtomicRewrite),
		fsys.WithParallel(c.ParallelWalk),
		fsys.WithCharsetDetection(c.CharsetDetection()),
	}
	// Zero modes keep the fsys defaults.
	if c.FileMode != 0 {
		opts = append(opts, fsys.WithFileMode(c.FileMode.Perm()))
	}
	if c.DirMode != 0 {
		opts = append(opts, fsys.WithDirMode(c.DirMode.Perm()))
	}
	return opts
}

func buildExecutor(c domainconfig.ResilienceConfig) resilience.ExecutorConfig {
	cfg := resilience.DefaultExecutorConfig()
	cfg.MaxConcurrent = c.MaxConcurrent
	cfg.Timeout = c.Timeout.Duration()
	cfg.RetryMaxAttempts = c.RetryAttempts
	cfg.RetryInitialDelay = c.RetryDelay.Duration()
	return cfg
}

func buildRateLimit(c domainconfig.RateLimitConfig) *inframw.RateLimitConfig {
	if !c.Enabled {
		return nil
	}
	return &inframw.RateLimitConfig{
		Scope: inframw.RateLimitScope(c.Scope),
		Rate:  c.Rate,
		Burst: c.Burst,
		Wait:  c.Wait,
	}
}

func buildObservability(c *domainconfig.ServerConfig) []observability.Option {
	opts := []observability.Option{
		observability.WithSampleRate(c.Tracing.SampleRate),
	}
	if c.Name != "" {
		opts = append(opts, observability.WithServiceName(c.Name))
	}
	if !c.Tracing.Enabled {
		return opts
	}

	switch c.Tracing.Exporter {
	case domainconfig.ExporterOTLP:
		opts = append(opts, observability.WithTracing(observability.ExporterOTLP, c.Tracing.Endpoint))
		if c.Tracing.Insecure {
			opts = append(opts, observability.WithTracingInsecure())
		}
	case domainconfig.ExporterNoop:
		opts = append(opts, observability.WithTracing(observability.ExporterNoop, ""))
	default:
		// Stdout spans go to stderr, stdout carries the stdio transport.
		opts = append(opts, observability.WithStdoutTracing(nil))
	}
	return opts
}
