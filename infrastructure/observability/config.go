// Package observability wires the OpenTelemetry tracer provider.
package observability

import (
	"io"
	"os"
	"time"
)

// Config configures the observability infrastructure.
type Config struct {
	// ServiceName is the name of the service for telemetry.
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Tracing configures distributed tracing.
	Tracing TracingConfig
}

// TracingConfig configures distributed tracing.
type TracingConfig struct {
	// Enabled enables tracing (default: false).
	Enabled bool

	// Exporter specifies the trace exporter type.
	Exporter ExporterType

	// Endpoint is the OTLP endpoint (e.g., "localhost:4317").
	Endpoint string

	// Insecure disables TLS for the exporter connection.
	Insecure bool

	// SampleRate is the sampling rate (0.0-1.0, default: 1.0).
	SampleRate float64

	// BatchTimeout is the batch export timeout.
	BatchTimeout time.Duration

	// MaxExportBatchSize is the maximum batch size.
	MaxExportBatchSize int

	// Writer receives spans from the stdout exporter. Defaults to stderr,
	// since stdout carries the MCP stdio transport.
	Writer io.Writer
}

// ExporterType specifies the telemetry exporter.
type ExporterType string

const (
	// ExporterOTLP exports to an OTLP gRPC endpoint (Jaeger, Tempo, Grafana).
	ExporterOTLP ExporterType = "otlp"

	// ExporterStdout writes spans as JSON to the configured writer.
	ExporterStdout ExporterType = "stdout"

	// ExporterNoop disables export.
	ExporterNoop ExporterType = "noop"
)

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "agent-fs",
		ServiceVersion: "dev",
		Tracing: TracingConfig{
			Enabled:            false,
			Exporter:           ExporterNoop,
			SampleRate:         1.0,
			BatchTimeout:       5 * time.Second,
			MaxExportBatchSize: 512,
			Writer:             os.Stderr,
		},
	}
}

// Option configures the observability infrastructure.
type Option func(*Config)

// WithServiceName sets the service name.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithServiceVersion sets the service version.
func WithServiceVersion(version string) Option {
	return func(c *Config) {
		c.ServiceVersion = version
	}
}

// WithTracing enables tracing with the specified exporter.
func WithTracing(exporter ExporterType, endpoint string) Option {
	return func(c *Config) {
		c.Tracing.Enabled = true
		c.Tracing.Exporter = exporter
		c.Tracing.Endpoint = endpoint
	}
}

// WithTracingInsecure disables TLS for tracing.
func WithTracingInsecure() Option {
	return func(c *Config) {
		c.Tracing.Insecure = true
	}
}

// WithSampleRate sets the trace sampling rate.
func WithSampleRate(rate float64) Option {
	return func(c *Config) {
		c.Tracing.SampleRate = rate
	}
}

// WithStdoutTracing enables the stdout exporter writing to w.
func WithStdoutTracing(w io.Writer) Option {
	return func(c *Config) {
		c.Tracing.Enabled = true
		c.Tracing.Exporter = ExporterStdout
		if w != nil {
			c.Tracing.Writer = w
		}
	}
}

// WithBatchTimeout sets the batch export timeout.
func WithBatchTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Tracing.BatchTimeout = d
	}
}
