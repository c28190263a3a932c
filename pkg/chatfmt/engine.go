package chatfmt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/chatfmt/pkg/chatfmt/event"
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/format"
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/observability"
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/placeholder"
)

// DefaultMessageToken is the reserved token replaced by the message body
// when a format template is applied.
const DefaultMessageToken = "message"

// Engine formats and substitutes chat messages for subjects of type S.
//
// An Engine is constructed once with New and handed to every collaborator
// that needs it; there is no package-level instance. All methods are safe
// for concurrent use: the placeholder registry copies its membership on
// iteration and the rule list is swapped atomically.
//
// Example:
//
//	engine := chatfmt.New[User](
//	    chatfmt.WithFormats(rules),
//	    chatfmt.WithLogger[User](slog.Default()),
//	)
//	engine.RegisterPlaceholder(placeholder.NewAttrs(attrs))
//
//	out, err := engine.Render(ctx, sender, "hello {username}")
type Engine[S any] struct {
	providers *placeholder.Registry[S]
	rules     atomic.Pointer[[]format.Rule[S]]

	messageToken string
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	bus          event.Bus
}

// New creates an engine. Without options it has no providers, no rules,
// and observability disabled.
func New[S any](opts ...Option[S]) *Engine[S] {
	e := &Engine[S]{
		providers:    placeholder.NewRegistry[S](),
		messageToken: DefaultMessageToken,
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
	}
	empty := []format.Rule[S]{}
	e.rules.Store(&empty)

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterPlaceholder adds a provider and reports whether it was newly
// added. The provider is visible to the next substitution immediately.
// Panics if p is nil.
func (e *Engine[S]) RegisterPlaceholder(p placeholder.Provider[S]) bool {
	added := e.providers.Register(p)
	if added {
		observability.LogProviderChange(e.logger, "register", e.providers.Len())
		e.publish(event.TypeProviderRegistered, map[string]any{
			"providers": e.providers.Len(),
		})
	}
	return added
}

// UnregisterPlaceholder removes a provider and reports whether it was
// present.
func (e *Engine[S]) UnregisterPlaceholder(p placeholder.Provider[S]) bool {
	removed := e.providers.Unregister(p)
	if removed {
		observability.LogProviderChange(e.logger, "unregister", e.providers.Len())
		e.publish(event.TypeProviderUnregistered, map[string]any{
			"providers": e.providers.Len(),
		})
	}
	return removed
}

// Placeholders returns a point-in-time copy of the registered providers.
func (e *Engine[S]) Placeholders() []placeholder.Provider[S] {
	return e.providers.Snapshot()
}

// SetFormats replaces the rule list in one atomic step: concurrent
// selections see either the old list or the new one, never a mix.
// The slice is copied; the caller keeps ownership of its argument.
func (e *Engine[S]) SetFormats(rules []format.Rule[S]) {
	copied := append([]format.Rule[S](nil), rules...)
	e.rules.Store(&copied)

	observability.LogFormatsSwapped(e.logger, len(copied))
	e.publish(event.TypeFormatsSwapped, map[string]any{
		"count": len(copied),
	})
}

// Formats returns a copy of the current rule list in order.
func (e *Engine[S]) Formats() []format.Rule[S] {
	rules := *e.rules.Load()
	return append([]format.Rule[S](nil), rules...)
}

// ResolveFormat returns the first rule whose predicate holds for the
// subject, and false if none does.
func (e *Engine[S]) ResolveFormat(subject S) (format.Rule[S], bool) {
	rule, ok := format.Select(subject, *e.rules.Load())
	e.metrics.RecordSelection(context.Background(), rule.Name, ok)
	return rule, ok
}

// Substitute resolves placeholder tokens in text against the current
// provider set. Unresolved tokens stay verbatim. The only error condition
// is a provider panic (*placeholder.ProviderError); ctx feeds tracing and
// metrics only, the call itself never blocks.
func (e *Engine[S]) Substitute(ctx context.Context, subject S, text string) (string, error) {
	out, _, err := e.substitute(ctx, "direct", subject, text)
	return out, err
}

// Render produces the final display string for a raw chat message:
// it selects the sender's format rule and applies it via RenderWith.
// Returns ErrNoFormat when no rule matches.
func (e *Engine[S]) Render(ctx context.Context, subject S, message string) (string, error) {
	rule, ok := e.ResolveFormat(subject)
	if !ok {
		observability.LogNoFormat(e.logger, "")
		return "", ErrNoFormat
	}
	return e.RenderWith(ctx, rule, subject, message)
}

// RenderWith applies a specific rule to a raw chat message.
//
// Resolution happens in two phases. The raw message body is substituted
// first, in isolation, so providers see the sender's literal tokens.
// The resolved body then replaces the rule's message token and a second
// pass resolves the tokens the template itself contributes. Because a
// pass never rescans replacement values, tokens introduced by the body
// survive into the output verbatim.
func (e *Engine[S]) RenderWith(ctx context.Context, rule format.Rule[S], subject S, message string) (out string, err error) {
	messageID := uuid.NewString()
	start := time.Now()

	ctx, span := e.spans.StartRenderSpan(ctx, messageID)
	defer func() {
		e.spans.EndSpanWithError(span, err)
		e.metrics.RecordRender(ctx, rule.Name, time.Since(start), err)
	}()

	logger := observability.EnrichLogger(e.logger, messageID, rule.Name)
	observability.LogRenderStart(logger, messageID)

	body, _, err := e.substitute(ctx, "body", subject, message)
	if err != nil {
		observability.LogRenderError(logger, messageID, err, sinceMs(start))
		return "", fmt.Errorf("resolve message body: %w", err)
	}

	merged := strings.ReplaceAll(rule.Template, "{"+e.messageToken+"}", body)

	out, stats, err := e.substitute(ctx, "template", subject, merged)
	if err != nil {
		observability.LogRenderError(logger, messageID, err, sinceMs(start))
		return "", fmt.Errorf("resolve template: %w", err)
	}

	observability.LogRenderComplete(logger, messageID, rule.Name, sinceMs(start), stats.Unresolved)
	e.publish(event.TypeMessageRendered, map[string]any{
		"message_id": messageID,
		"rule":       rule.Name,
		"length":     len(out),
	})

	return out, nil
}

// Close clears the placeholder registry. The engine rejects nothing after
// Close; it simply resolves no tokens until providers are registered again.
func (e *Engine[S]) Close() error {
	e.providers.Clear()
	return nil
}

// substitute runs one substitution pass with tracing and metrics.
func (e *Engine[S]) substitute(ctx context.Context, phase string, subject S, text string) (string, placeholder.Stats, error) {
	ctx, span := e.spans.StartSubstituteSpan(ctx, phase)
	start := time.Now()

	out, stats, err := e.providers.Replace(subject, text)

	e.metrics.RecordSubstitution(ctx, time.Since(start), stats.Resolved, stats.Unresolved)
	e.spans.EndSpanWithError(span, err)

	return out, stats, err
}

// publish sends an engine event when a bus is configured.
// Delivery is best effort: publish errors are dropped.
func (e *Engine[S]) publish(eventType string, fields map[string]any) {
	if e.bus == nil {
		return
	}
	_ = e.bus.Publish(context.Background(), event.New(eventType, fields))
}

// sinceMs returns the elapsed time in milliseconds.
func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
