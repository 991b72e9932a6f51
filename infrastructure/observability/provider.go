package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ErrUnknownExporter indicates an unsupported trace exporter type.
var ErrUnknownExporter = errors.New("unknown trace exporter type")

// Provider manages the tracer provider and its exporters.
type Provider struct {
	config         Config
	tracerProvider trace.TracerProvider
	shutdownFuncs  []func(context.Context) error
}

// New creates a new observability provider. When tracing is enabled with a
// real exporter the provider is also installed as the global otel provider.
func New(ctx context.Context, opts ...Option) (*Provider, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Provider{config: cfg}

	if !cfg.Tracing.Enabled {
		p.tracerProvider = noop.NewTracerProvider()
		return p, nil
	}

	if err := p.setupTracing(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// setupTracing initializes the tracing infrastructure.
func (p *Provider) setupTracing(ctx context.Context) error {
	// Not merged with resource.Default() to avoid schema URL conflicts.
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(p.config.ServiceName),
		semconv.ServiceVersion(p.config.ServiceVersion),
	)

	var exporter sdktrace.SpanExporter

	switch p.config.Tracing.Exporter {
	case ExporterOTLP:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(p.config.Tracing.Endpoint),
		}
		if p.config.Tracing.Insecure {
			opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return fmt.Errorf("create otlp exporter: %w", err)
		}
		exporter = exp

	case ExporterStdout:
		exp, err := stdouttrace.New(
			stdouttrace.WithWriter(p.config.Tracing.Writer),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("create stdout exporter: %w", err)
		}
		exporter = exp

	case ExporterNoop:
		p.tracerProvider = noop.NewTracerProvider()
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownExporter, p.config.Tracing.Exporter)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(p.config.Tracing.BatchTimeout),
			sdktrace.WithMaxExportBatchSize(p.config.Tracing.MaxExportBatchSize),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(p.config.Tracing.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p.tracerProvider = tp
	p.shutdownFuncs = append(p.shutdownFuncs, tp.Shutdown)

	return nil
}

// Sampler maps a sample rate to a parent-based sampler.
func Sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case rate <= 0.0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// Tracer returns a tracer from the provider.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracerProvider.Tracer(p.config.ServiceName)
}

// TracerProvider returns the underlying tracer provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// Enabled reports whether spans are exported somewhere.
func (p *Provider) Enabled() bool {
	return len(p.shutdownFuncs) > 0
}

// Shutdown flushes pending spans and shuts down the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewNoopProvider creates a provider that records nothing.
func NewNoopProvider() *Provider {
	return &Provider{
		config:         DefaultConfig(),
		tracerProvider: noop.NewTracerProvider(),
	}
}
