/*
Package format defines display format rules and first-match selection.

A Rule pairs a template string with a predicate over the message sender.
Rules live in an ordered list supplied by the caller (usually built from
config); Select walks that list once and returns the first rule whose
predicate holds.

	rules := []format.Rule[User]{
	    {Name: "staff", Template: "[STAFF] {username}: {message}",
	        When: format.HasPermission(perms, "chat.staff")},
	    {Name: "default", Template: "{username}: {message}"},
	}

	rule, ok := format.Select(alice, rules)

Predicates compose with And, Or, and Not, and can be built from boolean
expressions over subject attributes with Expr.
*/
package format
