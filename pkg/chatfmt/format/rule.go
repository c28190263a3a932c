package format

import (
	"github.com/randalmurphal/chatfmt/pkg/chatfmt/expr"
)

// Predicate decides whether a rule applies to a subject.
// Predicates must be side-effect free and fast: they run once per incoming
// message and results are never cached across calls.
type Predicate[S any] func(subject S) bool

// Rule pairs a display template with the predicate that gates it.
// Rules are held in a caller-ordered slice; the position in that slice is
// the tie-break when several predicates hold.
type Rule[S any] struct {
	// Name identifies the rule in config, logs, and metrics.
	Name string

	// Template is the display format. It contains the reserved message body
	// token (conventionally {message}) and any other placeholder tokens.
	// The engine treats it as an opaque string.
	Template string

	// When gates the rule. A nil predicate always matches, which is the
	// conventional way to end a rule list with a default.
	When Predicate[S]
}

// Matches reports whether the rule applies to the subject.
func (r Rule[S]) Matches(subject S) bool {
	if r.When == nil {
		return true
	}
	return r.When(subject)
}

// Permissions is the external permission-check collaborator used by
// permission predicates.
type Permissions[S any] interface {
	HasPermission(subject S, node string) bool
}

// Always matches every subject.
func Always[S any]() Predicate[S] {
	return func(S) bool { return true }
}

// Never matches no subject.
func Never[S any]() Predicate[S] {
	return func(S) bool { return false }
}

// Not inverts a predicate.
func Not[S any](p Predicate[S]) Predicate[S] {
	return func(subject S) bool { return !p(subject) }
}

// And matches when all predicates match. With no arguments it matches.
func And[S any](ps ...Predicate[S]) Predicate[S] {
	return func(subject S) bool {
		for _, p := range ps {
			if !p(subject) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches. With no arguments it never matches.
func Or[S any](ps ...Predicate[S]) Predicate[S] {
	return func(subject S) bool {
		for _, p := range ps {
			if p(subject) {
				return true
			}
		}
		return false
	}
}

// HasPermission matches subjects holding the permission node.
func HasPermission[S any](perms Permissions[S], node string) Predicate[S] {
	if perms == nil {
		panic("chatfmt: nil permissions")
	}
	return func(subject S) bool {
		return perms.HasPermission(subject, node)
	}
}

// Expr builds a predicate from a boolean expression over subject attributes.
// vars derives the attribute map from a subject; see the expr package for
// the expression language. Evaluation errors make the predicate not match.
//
// Example:
//
//	when := format.Expr(`group == "staff"`, func(u User) map[string]any {
//	    return map[string]any{"group": u.Group, "server": u.Server}
//	})
func Expr[S any](expression string, vars func(S) map[string]any) Predicate[S] {
	ev := expr.New()
	return func(subject S) bool {
		var m map[string]any
		if vars != nil {
			m = vars(subject)
		}
		ok, err := ev.Evaluate(expression, m)
		if err != nil {
			return false
		}
		return ok
	}
}
