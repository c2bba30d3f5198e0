// Package trace records editing sessions as OpenTelemetry traces.
//
// A session is one root span; each document mutation and each save is a
// child span. Export is disabled unless an OTLP endpoint is configured.
package trace

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InstrumentationName is the tracer name used for all furnedit spans.
const InstrumentationName = "furnedit/layers"

// Options configures the OTLP exporter.
type Options struct {
	Endpoint    string // host:port or URL; empty disables export
	Insecure    bool
	ServiceName string
}

// NewExporter creates an OTLP/HTTP exporter. Returns nil when no endpoint
// is configured.
func NewExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	if opts.Endpoint == "" {
		return nil, nil
	}

	clientOpts := []otlptracehttp.Option{}
	if strings.Contains(opts.Endpoint, "://") {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(opts.Endpoint))
	} else {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpoint(opts.Endpoint))
	}
	if opts.Insecure {
		clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}
	return exporter, nil
}

func newProvider(exporter sdktrace.SpanExporter, serviceName string, batch bool) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	spanOpt := sdktrace.WithSyncer(exporter)
	if batch {
		spanOpt = sdktrace.WithBatcher(exporter)
	}
	return sdktrace.NewTracerProvider(spanOpt, sdktrace.WithResource(res))
}
