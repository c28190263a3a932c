package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records chatfmt metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRender records a completed (or failed) message render.
	RecordRender(ctx context.Context, rule string, duration time.Duration, err error)

	// RecordSubstitution records one substitution pass with its token outcome.
	RecordSubstitution(ctx context.Context, duration time.Duration, resolved, unresolved int)

	// RecordSelection records a format selection attempt.
	RecordSelection(ctx context.Context, rule string, matched bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	renders           metric.Int64Counter
	renderErrors      metric.Int64Counter
	renderLatency     metric.Float64Histogram
	substitutions     metric.Int64Counter
	substituteLatency metric.Float64Histogram
	tokensResolved    metric.Int64Counter
	tokensUnresolved  metric.Int64Counter
	selections        metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("chatfmt")

	renders, err := meter.Int64Counter("chatfmt.renders",
		metric.WithDescription("Number of message renders"),
	)
	if err != nil {
		return nil, err
	}

	renderErrors, err := meter.Int64Counter("chatfmt.render.errors",
		metric.WithDescription("Number of failed message renders"),
	)
	if err != nil {
		return nil, err
	}

	renderLatency, err := meter.Float64Histogram("chatfmt.render.latency_ms",
		metric.WithDescription("Message render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	substitutions, err := meter.Int64Counter("chatfmt.substitutions",
		metric.WithDescription("Number of substitution passes"),
	)
	if err != nil {
		return nil, err
	}

	substituteLatency, err := meter.Float64Histogram("chatfmt.substitute.latency_ms",
		metric.WithDescription("Substitution pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	tokensResolved, err := meter.Int64Counter("chatfmt.tokens.resolved",
		metric.WithDescription("Number of placeholder tokens resolved"),
	)
	if err != nil {
		return nil, err
	}

	tokensUnresolved, err := meter.Int64Counter("chatfmt.tokens.unresolved",
		metric.WithDescription("Number of placeholder tokens left verbatim"),
	)
	if err != nil {
		return nil, err
	}

	selections, err := meter.Int64Counter("chatfmt.format.selections",
		metric.WithDescription("Number of format selection attempts"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		renders:           renders,
		renderErrors:      renderErrors,
		renderLatency:     renderLatency,
		substitutions:     substitutions,
		substituteLatency: substituteLatency,
		tokensResolved:    tokensResolved,
		tokensUnresolved:  tokensUnresolved,
		selections:        selections,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. Configure the provider before calling this function;
// if meter creation fails, a no-op recorder is returned and the failure
// is logged once.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Default().Warn("chatfmt metrics disabled", slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRender implements MetricsRecorder.
func (m *otelMetrics) RecordRender(ctx context.Context, rule string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("rule", rule))
	m.renders.Add(ctx, 1, attrs)
	m.renderLatency.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
	if err != nil {
		m.renderErrors.Add(ctx, 1, attrs)
	}
}

// RecordSubstitution implements MetricsRecorder.
func (m *otelMetrics) RecordSubstitution(ctx context.Context, duration time.Duration, resolved, unresolved int) {
	m.substitutions.Add(ctx, 1)
	m.substituteLatency.Record(ctx, float64(duration.Microseconds())/1000.0)
	if resolved > 0 {
		m.tokensResolved.Add(ctx, int64(resolved))
	}
	if unresolved > 0 {
		m.tokensUnresolved.Add(ctx, int64(unresolved))
	}
}

// RecordSelection implements MetricsRecorder.
func (m *otelMetrics) RecordSelection(ctx context.Context, rule string, matched bool) {
	m.selections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("rule", rule),
		attribute.Bool("matched", matched),
	))
}
