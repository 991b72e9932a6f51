package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// DefaultTracerName is the instrumentation name used when none is configured.
const DefaultTracerName = "agent-fs"

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer to use.
	TracerName string

	// Tracer is a custom tracer to use. If nil, the global provider is used.
	Tracer trace.Tracer

	// RecordInput determines if tool input should be recorded as span attributes.
	RecordInput bool

	// RecordOutput determines if tool output should be recorded as span attributes.
	RecordOutput bool

	// MaxAttributeSize limits the size of recorded attributes.
	MaxAttributeSize int

	// SpanNamePrefix is prepended to span names.
	SpanNamePrefix string

	// AdditionalAttributes are added to all spans.
	AdditionalAttributes []attribute.KeyValue
}

// DefaultTracingConfig returns a sensible default configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName:       DefaultTracerName,
		RecordInput:      true,
		RecordOutput:     false,
		MaxAttributeSize: 1024,
		SpanNamePrefix:   "tool.",
	}
}

// Tracing returns middleware that creates OpenTelemetry spans for tool executions.
func Tracing(cfg TracingConfig) middleware.Middleware {
	tracer := cfg.Tracer
	if tracer == nil {
		tracerName := cfg.TracerName
		if tracerName == "" {
			tracerName = DefaultTracerName
		}
		tracer = otel.Tracer(tracerName)
	}

	maxSize := cfg.MaxAttributeSize
	if maxSize <= 0 {
		maxSize = 1024
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			ctx, span := tracer.Start(ctx, cfg.SpanNamePrefix+execCtx.Tool.Name(),
				trace.WithSpanKind(trace.SpanKindInternal))
			defer span.End()

			attrs := ToolSpanAttributes(execCtx)
			if cfg.RecordInput && len(execCtx.Input) > 0 {
				attrs = append(attrs, attribute.String("tool.input", truncate(string(execCtx.Input), maxSize)))
			}
			attrs = append(attrs, cfg.AdditionalAttributes...)
			span.SetAttributes(attrs...)

			result, err := next(ctx, execCtx)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return result, err
			}

			span.SetStatus(codes.Ok, "")
			if cfg.RecordOutput && len(result.Output) > 0 {
				span.SetAttributes(attribute.String("tool.output", truncate(string(result.Output), maxSize)))
			}
			span.SetAttributes(attribute.Int64("tool.duration_ms", result.Duration.Milliseconds()))

			return result, nil
		}
	}
}

// TracingOption configures the tracing middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets a custom tracer.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithInputRecording enables or disables input recording.
func WithInputRecording(enabled bool) TracingOption {
	return func(c *TracingConfig) {
		c.RecordInput = enabled
	}
}

// WithOutputRecording enables or disables output recording.
func WithOutputRecording(enabled bool) TracingOption {
	return func(c *TracingConfig) {
		c.RecordOutput = enabled
	}
}

// WithMaxAttributeSize sets the maximum attribute size.
func WithMaxAttributeSize(size int) TracingOption {
	return func(c *TracingConfig) {
		c.MaxAttributeSize = size
	}
}

// WithAdditionalAttributes adds extra attributes to all spans.
func WithAdditionalAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AdditionalAttributes = append(c.AdditionalAttributes, attrs...)
	}
}

// NewTracing creates tracing middleware with the given options.
func NewTracing(opts ...TracingOption) middleware.Middleware {
	cfg := DefaultTracingConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Tracing(cfg)
}

// ToolSpanAttributes returns standard attributes for a tool span.
func ToolSpanAttributes(execCtx *middleware.ExecutionContext) []attribute.KeyValue {
	annotations := execCtx.Tool.Annotations()
	attrs := []attribute.KeyValue{
		attribute.String("tool.name", execCtx.Tool.Name()),
		attribute.Bool("tool.read_only", annotations.ReadOnly),
		attribute.Bool("tool.destructive", annotations.Destructive),
		attribute.Bool("tool.idempotent", annotations.Idempotent),
		attribute.String("tool.risk_level", annotations.RiskLevel.String()),
	}
	if execCtx.CallID != "" {
		attrs = append(attrs, attribute.String("tool.call_id", execCtx.CallID))
	}
	if execCtx.Source != "" {
		attrs = append(attrs, attribute.String("tool.source", execCtx.Source))
	}
	return attrs
}

// truncate truncates a string to the specified length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "...[truncated]"
}
