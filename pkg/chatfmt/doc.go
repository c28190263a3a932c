/*
Package chatfmt provides a chat-message enrichment engine for
multi-server networks.

# Overview

chatfmt turns a raw chat line into a fully decorated display string in
two steps: placeholder substitution and format selection. Placeholder
providers resolve {token} references against the sending subject, and
format rules decide which template wraps the message. The subject type
is a type parameter, so the engine works with whatever player, user, or
session type the host application already has:

	type Player struct {
	    Name   string
	    Server string
	}

The library is a building block, not a server. It holds no network
state and performs no I/O during a render; everything it needs comes
from the registered providers and the subject value.

# Basic Usage

Create an engine, register providers, set rules, and render:

	engine := chatfmt.New[Player](
	    chatfmt.WithFormats([]format.Rule[Player]{
	        {Name: "default", Template: "<{username}> {message}"},
	    }),
	)
	engine.RegisterPlaceholder(placeholder.NewAttrs(map[string]func(Player) string{
	    "username": func(p Player) string { return p.Name },
	    "server":   func(p Player) string { return p.Server },
	}))

	out, err := engine.Render(ctx, sender, "hello from {server}")
	// "<Alice> hello from hub"

Render resolves the raw message body first, merges it into the matched
rule's template at the {message} token, then resolves the template's
own tokens. Replacement values are never rescanned, so player-supplied
text cannot trigger further expansion.

# Placeholder Providers

A provider answers Resolve(subject, token) with a value and an ok flag.
Providers are consulted in an unspecified order; the first ok answer
wins and an empty string with ok=true is a real answer, not a miss.
Tokens nobody resolves stay in the text verbatim. The placeholder
package ships ready-made providers (Func, Static, Attrs, Permission)
and the metadata package adds one backed by a persistent store.

# Format Rules

A rule pairs a template with an optional predicate. Selection walks
the list in order and returns the first rule whose predicate holds,
so order encodes priority: put the most specific rules first and an
unconditional fallback last. Rules usually come from a YAML or JSON
file via the config package, which compiles permission gates and
"when" expressions into predicates.

SetFormats swaps the whole rule list atomically. A render in flight
sees either the old list or the new one, which makes live config
reload safe without stopping traffic.

# Observability

Logging, metrics, and tracing are opt-in through options:

	engine := chatfmt.New[Player](
	    chatfmt.WithLogger[Player](slog.Default()),
	    chatfmt.WithMetrics[Player](observability.NewMetricsRecorder()),
	    chatfmt.WithSpanManager[Player](observability.NewSpanManager()),
	)

Metrics and traces go through OpenTelemetry. An engine built with no
options emits nothing and costs nothing.

# Errors

Render returns ErrNoFormat when no rule matches the sender. The only
substitution failure is a provider panic, surfaced as a
*placeholder.ProviderError carrying the token and recovered value;
misbehaving text alone never produces an error.

# Subpackages

  - placeholder: token scanning, providers, and the provider registry
  - format: rules, predicates, and first-match selection
  - config: YAML/JSON rule loading and predicate compilation
  - expr: the small expression language behind "when" clauses
  - metadata: persistent per-subject key/value storage and its provider
  - event: engine lifecycle events and an in-process bus
  - observability: slog helpers, OTel metrics, and tracing
*/
package chatfmt
