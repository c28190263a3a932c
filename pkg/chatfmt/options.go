package chatfmt

import (
	"log/slog"

	"github.com/randalmurphal/chatfmt/pkg/chatfmt/event"
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/format"
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/observability"
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/placeholder"
)

// Option configures an Engine during construction.
type Option[S any] func(*Engine[S])

// WithLogger enables structured logging. A nil logger leaves logging
// disabled, which is the default.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(e *Engine[S]) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Use observability.NewMetricsRecorder
// for OpenTelemetry instruments; the default records nothing.
func WithMetrics[S any](recorder observability.MetricsRecorder) Option[S] {
	return func(e *Engine[S]) {
		if recorder != nil {
			e.metrics = recorder
		}
	}
}

// WithSpanManager enables distributed tracing of renders and substitution
// passes. The default emits no spans.
func WithSpanManager[S any](spans observability.SpanManager) Option[S] {
	return func(e *Engine[S]) {
		if spans != nil {
			e.spans = spans
		}
	}
}

// WithBus publishes engine lifecycle events to bus. Publishing is best
// effort with a background context, so a blocking-mode bus with full
// buffers will stall the engine; prefer event.BusConfig.NonBlocking for
// buses attached here.
func WithBus[S any](bus event.Bus) Option[S] {
	return func(e *Engine[S]) {
		e.bus = bus
	}
}

// WithMessageToken overrides the token that format templates use for the
// message body. Empty values are ignored.
func WithMessageToken[S any](token string) Option[S] {
	return func(e *Engine[S]) {
		if token != "" {
			e.messageToken = token
		}
	}
}

// WithFormats sets the initial rule list. Equivalent to calling SetFormats
// after construction, minus the swap log and event.
func WithFormats[S any](rules []format.Rule[S]) Option[S] {
	return func(e *Engine[S]) {
		copied := append([]format.Rule[S](nil), rules...)
		e.rules.Store(&copied)
	}
}

// WithProviders registers initial placeholder providers. Panics if any
// provider is nil.
func WithProviders[S any](providers ...placeholder.Provider[S]) Option[S] {
	return func(e *Engine[S]) {
		for _, p := range providers {
			e.providers.Register(p)
		}
	}
}
