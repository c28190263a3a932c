package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("chatfmt")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestSpanManager_StartRenderSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with message id attribute", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartRenderSpan(ctx, "msg-123")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "chatfmt.render", s.Name)

		var messageID string
		for _, attr := range s.Attributes {
			if attr.Key == "message.id" {
				messageID = attr.Value.AsString()
			}
		}
		assert.Equal(t, "msg-123", messageID)
	})

	t.Run("returns context carrying the span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		newCtx, span := sm.StartRenderSpan(ctx, "msg-456")
		assert.NotEqual(t, ctx, newCtx)

		span.End()
		require.Len(t, exporter.GetSpans(), 1)
	})
}

func TestSpanManager_StartSubstituteSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with phase attribute", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartSubstituteSpan(ctx, "body")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "chatfmt.substitute", s.Name)

		var phase string
		for _, attr := range s.Attributes {
			if attr.Key == "substitute.phase" {
				phase = attr.Value.AsString()
			}
		}
		assert.Equal(t, "body", phase)
	})

	t.Run("substitute span is a child of the render span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		ctx, renderSpan := sm.StartRenderSpan(ctx, "msg-1")
		_, subSpan := sm.StartSubstituteSpan(ctx, "template")

		subSpan.End()
		renderSpan.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		var child *tracetest.SpanStub
		for i := range spans {
			if spans[i].Name == "chatfmt.substitute" {
				child = &spans[i]
				break
			}
		}
		require.NotNil(t, child)
		assert.True(t, child.Parent.IsValid())
	})
}

func TestSpanManager_EndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("sets OK status for nil error", func(t *testing.T) {
		_, span := sm.StartRenderSpan(context.Background(), "msg-1")

		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
		assert.Equal(t, "", spans[0].Status.Description)
	})

	t.Run("sets Error status and records the error", func(t *testing.T) {
		exporter.Reset()

		_, span := sm.StartRenderSpan(context.Background(), "msg-2")
		sm.EndSpanWithError(span, errors.New("provider exploded"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, codes.Error, s.Status.Code)
		assert.Equal(t, "provider exploded", s.Status.Description)

		require.NotEmpty(t, s.Events)
		found := false
		for _, event := range s.Events {
			if event.Name == "exception" {
				found = true
			}
		}
		assert.True(t, found, "expected exception event")
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, errors.New("boom"))
		})
	})
}

func TestSpanManager_AddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("adds event to current span", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := sm.StartRenderSpan(ctx, "msg-1")

		sm.AddSpanEvent(ctx, "formats_swapped",
			attribute.Int64("rules", 3),
		)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.NotEmpty(t, spans[0].Events)

		var found bool
		for _, event := range spans[0].Events {
			if event.Name == "formats_swapped" {
				found = true
				for _, attr := range event.Attributes {
					if attr.Key == "rules" {
						assert.Equal(t, int64(3), attr.Value.AsInt64())
					}
				}
			}
		}
		assert.True(t, found, "expected formats_swapped event")
	})

	t.Run("no panic with no current span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(context.Background(), "orphan_event")
		})
	})
}
