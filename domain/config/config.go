// Package config provides domain models for server configuration.
package config

import (
	"fmt"
	"io/fs"
	"strconv"
	"time"
)

// ServerConfig represents the complete agentfs configuration.
type ServerConfig struct {
	// Name is the server name advertised to clients.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Version is the configuration schema version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Filesystem configures the file operations.
	Filesystem FilesystemConfig `json:"filesystem,omitempty" yaml:"filesystem,omitempty"`
	// Tools selects which tools are exposed.
	Tools ToolsConfig `json:"tools,omitempty" yaml:"tools,omitempty"`
	// Server configures the MCP transport.
	Server TransportConfig `json:"server,omitempty" yaml:"server,omitempty"`
	// Logging configures the logger.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Resilience configures execution guards.
	Resilience ResilienceConfig `json:"resilience,omitempty" yaml:"resilience,omitempty"`
	// Tracing configures OpenTelemetry tracing.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// FilesystemConfig configures the file operations.
type FilesystemConfig struct {
	// BaseDir resolves relative tool paths. Empty means the working directory.
	BaseDir string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`
	// FileMode is the permission for newly created files, before umask.
	FileMode FileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
	// DirMode is the permission for newly created directories, before umask.
	DirMode FileMode `json:"dir_mode,omitempty" yaml:"dir_mode,omitempty"`
	// AtomicRewrite makes chunk writes replace the file through a rename.
	AtomicRewrite bool `json:"atomic_rewrite,omitempty" yaml:"atomic_rewrite,omitempty"`
	// ParallelWalk walks recursive listings concurrently.
	ParallelWalk bool `json:"parallel_walk,omitempty" yaml:"parallel_walk,omitempty"`
	// DetectCharset guesses the encoding of files that fail to decode.
	DetectCharset *bool `json:"detect_charset,omitempty" yaml:"detect_charset,omitempty"`
}

// CharsetDetection reports whether charset detection is on. Unset means on.
func (c FilesystemConfig) CharsetDetection() bool {
	return c.DetectCharset == nil || *c.DetectCharset
}

// ToolsConfig selects which tools are exposed.
type ToolsConfig struct {
	// Enabled specifies which tools to enable (empty = all).
	Enabled []string `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Disabled specifies which tools to disable.
	Disabled []string `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// TransportConfig configures the MCP transport.
type TransportConfig struct {
	// Transport is stdio or http.
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty"`
	// Address is the listen address for the http transport.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	// Instructions are sent to clients on initialization.
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is trace, debug, info, warn, or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is console or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ResilienceConfig configures execution guards.
type ResilienceConfig struct {
	// MaxConcurrent bounds concurrent tool executions. Zero means unbounded.
	MaxConcurrent int `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"`
	// Timeout bounds how long a call may wait to start. Zero disables it.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// RetryAttempts is the total attempts for retryable tools. Zero or one
	// disables retries.
	RetryAttempts int `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty"`
	// RetryDelay is the first retry delay.
	RetryDelay Duration `json:"retry_delay,omitempty" yaml:"retry_delay,omitempty"`
	// RateLimit limits how often tools may be called.
	RateLimit RateLimitConfig `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// Rate limit scopes.
const (
	ScopeGlobal    = "global"
	ScopePerTool   = "per_tool"
	ScopePerSource = "per_source"
)

// RateLimitConfig configures the call rate limit.
type RateLimitConfig struct {
	// Enabled turns on the limit.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Rate is the number of calls allowed per second.
	Rate int `json:"rate,omitempty" yaml:"rate,omitempty"`
	// Burst is the bucket capacity. Zero means Rate.
	Burst int `json:"burst,omitempty" yaml:"burst,omitempty"`
	// Scope is global, per_tool, or per_source.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
	// Wait delays calls over the limit instead of rejecting them.
	Wait bool `json:"wait,omitempty" yaml:"wait,omitempty"`
}

// Exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
	ExporterNoop   = "noop"
)

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled turns on tracing.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Exporter is stdout, otlp, or noop.
	Exporter string `json:"exporter,omitempty" yaml:"exporter,omitempty"`
	// Endpoint is the OTLP gRPC endpoint.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// Insecure disables TLS for the OTLP endpoint.
	Insecure bool `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	// SampleRate is the fraction of traces sampled, 0 to 1.
	SampleRate float64 `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *ServerConfig {
	return &ServerConfig{
		Name:    "agentfs",
		Version: "1",
		Filesystem: FilesystemConfig{
			FileMode: 0o666,
			DirMode:  0o777,
		},
		Server: TransportConfig{
			Transport: TransportStdio,
			Address:   ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Resilience: ResilienceConfig{
			MaxConcurrent: 16,
			Timeout:       Duration(30 * time.Second),
			RetryAttempts: 3,
			RetryDelay:    Duration(50 * time.Millisecond),
			RateLimit: RateLimitConfig{
				Rate:  100,
				Burst: 100,
				Scope: ScopeGlobal,
			},
		},
		Tracing: TracingConfig{
			Exporter:   ExporterStdout,
			SampleRate: 1,
		},
	}
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		s = string(b)
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// FileMode is a permission mode written as an octal string such as "0644".
type FileMode fs.FileMode

// Perm returns the mode as permission bits.
func (m FileMode) Perm() fs.FileMode {
	return fs.FileMode(m)
}

func (m FileMode) String() string {
	return fmt.Sprintf("%04o", uint32(m))
}

func parseFileMode(s string) (FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	return FileMode(v), nil
}

// MarshalJSON implements json.Marshaler.
func (m FileMode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *FileMode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("file mode must be an octal string: %s", b)
	}
	mode, err := parseFileMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m FileMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *FileMode) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	mode, err := parseFileMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
