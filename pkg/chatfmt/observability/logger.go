// Package observability provides production-grade observability features
// for chatfmt: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds message context to a logger.
// Returns a new logger with message_id and rule fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "msg-123", "staff")
//	enriched.Info("rendering") // includes message_id, rule
func EnrichLogger(logger *slog.Logger, messageID, rule string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("message_id", messageID),
		slog.String("rule", rule),
	)
}

// LogRenderStart logs the start of a message render.
func LogRenderStart(logger *slog.Logger, messageID string) {
	if logger == nil {
		return
	}
	logger.Debug("message render starting",
		slog.String("message_id", messageID),
	)
}

// LogRenderComplete logs successful render completion.
func LogRenderComplete(logger *slog.Logger, messageID, rule string, durationMs float64, unresolved int) {
	if logger == nil {
		return
	}
	logger.Debug("message render completed",
		slog.String("message_id", messageID),
		slog.String("rule", rule),
		slog.Float64("duration_ms", durationMs),
		slog.Int("unresolved_tokens", unresolved),
	)
}

// LogRenderError logs render failure.
func LogRenderError(logger *slog.Logger, messageID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("message render failed",
		slog.String("message_id", messageID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNoFormat logs a selection miss.
func LogNoFormat(logger *slog.Logger, messageID string) {
	if logger == nil {
		return
	}
	logger.Warn("no format rule matched sender",
		slog.String("message_id", messageID),
	)
}

// LogFormatsSwapped logs a rule list replacement.
func LogFormatsSwapped(logger *slog.Logger, count int) {
	if logger == nil {
		return
	}
	logger.Info("format rules swapped",
		slog.Int("rules", count),
	)
}

// LogProviderChange logs a placeholder registry mutation.
func LogProviderChange(logger *slog.Logger, op string, registered int) {
	if logger == nil {
		return
	}
	logger.Debug("placeholder registry changed",
		slog.String("op", op),
		slog.Int("registered", registered),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}
