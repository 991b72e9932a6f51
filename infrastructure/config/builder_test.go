package config

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
	inframw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
	"github.com/felixgeelhaar/agent-fs/infrastructure/observability"
)

func applyFS(opts []fsys.Option) fsys.Config {
	return fsys.New(opts...).Config()
}

func applyObservability(opts []observability.Option) observability.Config {
	cfg := observability.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestBuilder_Defaults(t *testing.T) {
	result, err := NewBuilder(domainconfig.Default()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	fsCfg := applyFS(result.Filesystem)
	if fsCfg.BaseDir != "" || fsCfg.AtomicRewrite || fsCfg.ParallelWalk || !fsCfg.DetectCharset {
		t.Errorf("filesystem = %+v", fsCfg)
	}
	if fsCfg.FileMode != 0o666 || fsCfg.DirMode != 0o777 {
		t.Errorf("modes = %v %v", fsCfg.FileMode, fsCfg.DirMode)
	}

	if len(result.Selection.Enabled) != 0 || len(result.Selection.Disabled) != 0 {
		t.Errorf("Selection = %+v, want everything", result.Selection)
	}
	if result.Logging.Level != "info" || result.Logging.Format != "console" {
		t.Errorf("Logging = %+v", result.Logging)
	}
	if result.Executor.MaxConcurrent != 16 || result.Executor.Timeout != 30*time.Second || result.Executor.RetryMaxAttempts != 3 {
		t.Errorf("Executor = %+v", result.Executor)
	}
	if result.Executor.IsTransient == nil {
		t.Error("Executor classifier should keep the default")
	}
	if result.RateLimit != nil {
		t.Errorf("RateLimit = %+v, want nil", result.RateLimit)
	}

	obs := applyObservability(result.Observability)
	if obs.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if obs.ServiceName != "agentfs" {
		t.Errorf("ServiceName = %s, want agentfs", obs.ServiceName)
	}

	if result.Server.Transport != domainconfig.TransportStdio || result.Server.Name != "agentfs" {
		t.Errorf("Server = %+v", result.Server)
	}
}

func TestBuilder_Overrides(t *testing.T) {
	detect := false
	cfg := domainconfig.Default()
	cfg.Filesystem = domainconfig.FilesystemConfig{
		BaseDir:       "/srv/data",
		FileMode:      0o600,
		DirMode:       0o700,
		AtomicRewrite: true,
		ParallelWalk:  true,
		DetectCharset: &detect,
	}
	cfg.Tools = domainconfig.ToolsConfig{Disabled: []string{"delete_file"}}
	cfg.Resilience = domainconfig.ResilienceConfig{
		MaxConcurrent: 2,
		Timeout:       domainconfig.Duration(time.Second),
		RetryAttempts: 1,
		RetryDelay:    domainconfig.Duration(10 * time.Millisecond),
		RateLimit: domainconfig.RateLimitConfig{
			Enabled: true,
			Rate:    5,
			Scope:   domainconfig.ScopePerTool,
			Wait:    true,
		},
	}
	cfg.Server = domainconfig.TransportConfig{Transport: "http", Address: ":9000", Instructions: "be careful"}

	result, err := NewBuilder(cfg).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := fsys.Config{
		BaseDir:       "/srv/data",
		FileMode:      fs.FileMode(0o600),
		DirMode:       fs.FileMode(0o700),
		AtomicRewrite: true,
		ParallelWalk:  true,
		DetectCharset: false,
	}
	if got := applyFS(result.Filesystem); got != want {
		t.Errorf("filesystem = %+v, want %+v", got, want)
	}
	if len(result.Selection.Disabled) != 1 || result.Selection.Disabled[0] != "delete_file" {
		t.Errorf("Selection = %+v", result.Selection)
	}
	if result.Executor.MaxConcurrent != 2 || result.Executor.Timeout != time.Second ||
		result.Executor.RetryMaxAttempts != 1 || result.Executor.RetryInitialDelay != 10*time.Millisecond {
		t.Errorf("Executor = %+v", result.Executor)
	}
	if rl := result.RateLimit; rl == nil || rl.Rate != 5 || rl.Burst != 0 || !rl.Wait || rl.Scope != inframw.ScopePerTool {
		t.Errorf("RateLimit = %+v", result.RateLimit)
	}
	if result.Server.Address != ":9000" || result.Server.Instructions != "be careful" {
		t.Errorf("Server = %+v", result.Server)
	}
}

func TestBuilder_Tracing(t *testing.T) {
	tests := []struct {
		name         string
		tracing      domainconfig.TracingConfig
		wantEnabled  bool
		wantExporter observability.ExporterType
		wantInsecure bool
	}{
		{
			name:         "disabled",
			tracing:      domainconfig.TracingConfig{Exporter: domainconfig.ExporterOTLP, SampleRate: 1},
			wantExporter: observability.ExporterNoop,
		},
		{
			name:         "stdout",
			tracing:      domainconfig.TracingConfig{Enabled: true, Exporter: domainconfig.ExporterStdout, SampleRate: 1},
			wantEnabled:  true,
			wantExporter: observability.ExporterStdout,
		},
		{
			name:         "empty exporter means stdout",
			tracing:      domainconfig.TracingConfig{Enabled: true, SampleRate: 1},
			wantEnabled:  true,
			wantExporter: observability.ExporterStdout,
		},
		{
			name:         "otlp",
			tracing:      domainconfig.TracingConfig{Enabled: true, Exporter: domainconfig.ExporterOTLP, Endpoint: "collector:4317", Insecure: true, SampleRate: 0.5},
			wantEnabled:  true,
			wantExporter: observability.ExporterOTLP,
			wantInsecure: true,
		},
		{
			name:         "noop",
			tracing:      domainconfig.TracingConfig{Enabled: true, Exporter: domainconfig.ExporterNoop, SampleRate: 1},
			wantEnabled:  true,
			wantExporter: observability.ExporterNoop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domainconfig.Default()
			cfg.Tracing = tt.tracing

			result, err := NewBuilder(cfg).Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			obs := applyObservability(result.Observability)

			if obs.Tracing.Enabled != tt.wantEnabled || obs.Tracing.Exporter != tt.wantExporter || obs.Tracing.Insecure != tt.wantInsecure {
				t.Errorf("Tracing = %+v", obs.Tracing)
			}
			if obs.Tracing.SampleRate != tt.tracing.SampleRate {
				t.Errorf("SampleRate = %v, want %v", obs.Tracing.SampleRate, tt.tracing.SampleRate)
			}
			if tt.wantExporter == observability.ExporterOTLP && obs.Tracing.Endpoint != tt.tracing.Endpoint {
				t.Errorf("Endpoint = %s", obs.Tracing.Endpoint)
			}
			if tt.wantExporter == observability.ExporterStdout && obs.Tracing.Writer == nil {
				t.Error("stdout exporter needs a writer")
			}
		})
	}
}

func TestBuilder_NilConfig(t *testing.T) {
	if _, err := NewBuilder(nil).Build(); !errors.Is(err, ErrNilConfig) {
		t.Errorf("error = %v, want ErrNilConfig", err)
	}
}
