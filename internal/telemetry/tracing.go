package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/memolab/pkg/hooks"
)

// Default tracer name for memolab passes.
const defaultTracerName = "memolab"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "memolab").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// AttributeExtractor adds custom attributes to every pass span.
	AttributeExtractor func(info hooks.PassInfo) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(info hooks.PassInfo) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing is a hooks.Observer that creates one span per render pass and
// records gate decisions as span events.
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// given with WithTracer. Configure the provider in main() before creating
// holders.
type Tracing struct {
	tracer  trace.Tracer
	extract func(info hooks.PassInfo) []attribute.KeyValue
}

// NewTracing creates the tracing observer.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{tracer: tracer, extract: config.AttributeExtractor}
}

func (t *Tracing) PassStarted(ctx context.Context, info hooks.PassInfo) context.Context {
	attrs := []attribute.KeyValue{
		attribute.String("memolab.holder", info.Holder),
		attribute.String("memolab.holder_id", info.HolderID),
		attribute.Int64("memolab.seq", int64(info.Seq)),
		attribute.String("memolab.trigger", info.Trigger),
	}
	if t.extract != nil {
		attrs = append(attrs, t.extract(info)...)
	}

	ctx, _ = t.tracer.Start(ctx, "memolab.pass",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(info.Started),
	)
	return ctx
}

func (t *Tracing) GateDecided(ctx context.Context, _ hooks.PassInfo, d hooks.Decision) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("gate."+decisionLabel(d), trace.WithAttributes(
		attribute.String("memolab.gate", d.Gate),
		attribute.Int64("memolab.renders", int64(d.Renders)),
		attribute.String("memolab.changed", strings.Join(d.Changed, ",")),
	))
}

func (t *Tracing) PassFinished(ctx context.Context, info hooks.PassInfo, err error) {
	span := trace.SpanFromContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.Int64("memolab.duration_us", info.Duration.Microseconds()))
	span.End()
}
