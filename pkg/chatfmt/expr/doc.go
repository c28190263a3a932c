/*
Package expr evaluates boolean expressions over subject attributes.

Format rules can carry a condition such as

	server == "hub" and group != "muted"

which is evaluated against a map of attributes derived from the message
sender. The language is deliberately small: comparisons (==, !=, <, >, <=,
>=, contains), boolean connectives (and, or, not, !), and bare truthy
values. Custom binary operators can be added per evaluator.

	ok, err := expr.Eval(`group == "staff" or level >= 50`, map[string]any{
	    "group": "staff",
	    "level": 10,
	})
	// ok: true

Evaluation is side-effect free and an Evaluator is safe for concurrent use
after construction.
*/
package expr
