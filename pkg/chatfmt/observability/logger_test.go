package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestLogger returns a debug-level logger writing to buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	enriched := EnrichLogger(logger, "msg-1", "staff")
	enriched.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "message_id=msg-1")
	assert.Contains(t, out, "rule=staff")
}

func TestEnrichLogger_NilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "msg-1", "staff"))
}

func TestLogHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	LogRenderStart(logger, "msg-1")
	LogRenderComplete(logger, "msg-1", "default", 0.42, 2)
	LogRenderError(logger, "msg-1", errors.New("boom"), 0.1)
	LogNoFormat(logger, "msg-1")
	LogFormatsSwapped(logger, 3)
	LogProviderChange(logger, "register", 4)

	out := buf.String()
	assert.Contains(t, out, "message render starting")
	assert.Contains(t, out, "message render completed")
	assert.Contains(t, out, "unresolved_tokens=2")
	assert.Contains(t, out, "message render failed")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "no format rule matched sender")
	assert.Contains(t, out, "format rules swapped")
	assert.Contains(t, out, "rules=3")
	assert.Contains(t, out, "placeholder registry changed")
}

// Every helper must tolerate a nil logger without panicking.
func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogRenderStart(nil, "msg-1")
		LogRenderComplete(nil, "msg-1", "default", 1, 0)
		LogRenderError(nil, "msg-1", errors.New("x"), 1)
		LogNoFormat(nil, "msg-1")
		LogFormatsSwapped(nil, 0)
		LogProviderChange(nil, "register", 0)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, 0.0)
}
