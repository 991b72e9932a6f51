package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/agent-fs/application"
	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
	"github.com/felixgeelhaar/agent-fs/domain/pack"
	infraconfig "github.com/felixgeelhaar/agent-fs/infrastructure/config"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
	inframw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
	"github.com/felixgeelhaar/agent-fs/infrastructure/observability"
	infrapack "github.com/felixgeelhaar/agent-fs/infrastructure/pack"
	"github.com/felixgeelhaar/agent-fs/infrastructure/resilience"
	"github.com/felixgeelhaar/agent-fs/infrastructure/storage/memory"
	"github.com/felixgeelhaar/agent-fs/pack/filesystem"
)

// runtime is everything a command needs to execute tools.
type runtime struct {
	config     *domainconfig.ServerConfig
	settings   *infraconfig.BuildResult
	provider   *observability.Provider
	pack       *pack.Pack
	dispatcher *application.Dispatcher
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string, strict bool) (*domainconfig.ServerConfig, error) {
	if path == "" {
		return domainconfig.Default(), nil
	}
	cfg, err := infraconfig.NewLoader(infraconfig.WithStrictEnv(strict)).LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// bootstrap wires logging, tracing, the filesystem pack, and the dispatcher
// from the configuration at path. The caller must call close.
func (a *App) bootstrap(ctx context.Context, path string, override func(*domainconfig.ServerConfig)) (*runtime, error) {
	cfg, err := loadConfig(path, false)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if errs := domainconfig.NewValidator().Validate(cfg); errs.HasErrors() {
			return nil, fmt.Errorf("%w: %w", domainconfig.ErrValidationFailed, errs)
		}
	}

	settings, err := infraconfig.NewBuilder(cfg).Build()
	if err != nil {
		return nil, fmt.Errorf("build configuration: %w", err)
	}

	logCfg := settings.Logging
	logCfg.Output = a.stderr
	logging.Init(logCfg)

	provider, err := observability.New(ctx, append(settings.Observability, observability.WithServiceVersion(Version))...)
	if err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}

	rt := &runtime{config: cfg, settings: settings, provider: provider}
	if err := rt.wire(); err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	logging.Debug().
		Add(logging.Component("cli")).
		Add(logging.Str("base_dir", cfg.Filesystem.BaseDir)).
		Add(logging.Count(len(rt.dispatcher.Tools()))).
		Add(logging.Bool("tracing", provider.Enabled())).
		Msg("runtime ready")
	return rt, nil
}

func (rt *runtime) wire() error {
	p, err := filesystem.New(filesystem.WithFS(fsys.New(rt.settings.Filesystem...)))
	if err != nil {
		return fmt.Errorf("build filesystem pack: %w", err)
	}

	packs := infrapack.NewRegistry()
	if err := packs.Register(p); err != nil {
		return err
	}
	tools := memory.NewToolRegistry()
	if err := packs.Install(p.Name, tools, rt.settings.Selection); err != nil {
		return fmt.Errorf("install tools: %w", err)
	}

	tracing := inframw.DefaultTracingConfig()
	tracing.Tracer = rt.provider.Tracer()

	opts := []application.Option{
		application.WithRegistry(tools),
		application.WithExecutor(resilience.NewExecutor(rt.settings.Executor)),
		application.WithTracing(tracing),
	}
	if rt.settings.RateLimit != nil {
		opts = append(opts, application.WithRateLimit(*rt.settings.RateLimit))
	}

	d, err := application.NewDispatcherWithOptions(opts...)
	if err != nil {
		return err
	}

	rt.pack = p
	rt.dispatcher = d
	return nil
}

// close flushes spans. It is safe on a nil runtime.
func (rt *runtime) close(ctx context.Context) error {
	if rt == nil || rt.provider == nil {
		return nil
	}
	if err := rt.provider.Shutdown(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("flush traces: %w", err)
	}
	return nil
}
