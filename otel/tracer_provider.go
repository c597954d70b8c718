package otel

import (
	"context"
	"fmt"

	"github.com/bronystylecrazy/preventer/build"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewTraceExporter returns the configured span exporter, or nil when tracing
// is off.
func NewTraceExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.exporter() {
	case ExporterNone:
		return nil, nil
	case ExporterStdout:
		opts := []stdouttrace.Option{}
		if cfg.Traces.Pretty {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		return stdouttrace.New(opts...)
	case ExporterOTLPGRPC:
		opts := []otlptracegrpc.Option{}
		if cfg.Traces.Endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Traces.Endpoint))
		}
		if cfg.Traces.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		if cfg.Traces.Timeout > 0 {
			opts = append(opts, otlptracegrpc.WithTimeout(cfg.Traces.Timeout))
		}
		return otlptracegrpc.New(ctx, opts...)
	case ExporterOTLPHTTP:
		opts := []otlptracehttp.Option{}
		if cfg.Traces.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Traces.Endpoint))
		}
		if cfg.Traces.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if cfg.Traces.Timeout > 0 {
			opts = append(opts, otlptracehttp.WithTimeout(cfg.Traces.Timeout))
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("otel: unknown trace exporter %q", cfg.Traces.Exporter)
	}
}

func NewResource(cfg Config) *resource.Resource {
	name := cfg.ServiceName
	if name == "" {
		name = build.Name
	}
	return resource.NewSchemaless(
		attribute.String("service.name", name),
		attribute.String("service.version", build.Version),
	)
}

// NewTracerProvider returns a noop provider when tracing is off, otherwise an
// SDK provider flushed and shut down on fx stop.
func NewTracerProvider(lc fx.Lifecycle, cfg Config, logger *zap.Logger) (trace.TracerProvider, error) {
	exporter, err := NewTraceExporter(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if exporter == nil {
		return noop.NewTracerProvider(), nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(NewResource(cfg)),
	)
	logger.Debug("tracing enabled", zap.String("exporter", cfg.exporter()))
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}
