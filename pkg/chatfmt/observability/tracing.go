package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the chatfmt tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("chatfmt")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartRenderSpan starts a span for a full message render.
	StartRenderSpan(ctx context.Context, messageID string) (context.Context, trace.Span)

	// StartSubstituteSpan starts a span for one substitution pass.
	// The substitution span should be a child of the render span.
	StartSubstituteSpan(ctx context.Context, phase string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartRenderSpan starts a span for a full message render.
func (m *otelSpanManager) StartRenderSpan(ctx context.Context, messageID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "chatfmt.render",
		trace.WithAttributes(
			attribute.String("message.id", messageID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartSubstituteSpan starts a span for one substitution pass.
func (m *otelSpanManager) StartSubstituteSpan(ctx context.Context, phase string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "chatfmt.substitute",
		trace.WithAttributes(
			attribute.String("substitute.phase", phase),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
// A nil span is ignored.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
