package config

import (
	"fmt"

	"github.com/randalmurphal/chatfmt/pkg/chatfmt/format"
)

// BuildOptions supplies the collaborators predicates are built against.
type BuildOptions[S any] struct {
	// Permissions answers permission checks. Required when any rule has a
	// Permission (or require-permission is on).
	Permissions format.Permissions[S]

	// Vars derives expression attributes from a subject. Required when any
	// rule has a When expression.
	Vars func(S) map[string]any
}

// Build lowers a validated Config into an ordered rule list.
//
// Per rule: a Permission becomes a HasPermission predicate, a When
// expression becomes an Expr predicate, both together are combined with
// And, and neither means the rule always matches. With require-permission
// on, every rule is additionally gated behind the node
// permission-prefix + rule name.
func Build[S any](c Config, opts BuildOptions[S]) ([]format.Rule[S], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	needsPerms := c.RequirePermission
	needsVars := false
	for _, f := range c.Formats {
		if f.Permission != "" {
			needsPerms = true
		}
		if f.When != "" {
			needsVars = true
		}
	}
	if needsPerms && opts.Permissions == nil {
		return nil, fmt.Errorf("config: permission predicates configured but no Permissions supplied")
	}
	if needsVars && opts.Vars == nil {
		return nil, fmt.Errorf("config: expression predicates configured but no Vars supplied")
	}

	rules := make([]format.Rule[S], 0, len(c.Formats))
	for _, f := range c.Formats {
		var preds []format.Predicate[S]

		if c.RequirePermission {
			preds = append(preds, format.HasPermission(opts.Permissions, c.permissionPrefix()+f.Name))
		}
		if f.Permission != "" {
			preds = append(preds, format.HasPermission(opts.Permissions, f.Permission))
		}
		if f.When != "" {
			preds = append(preds, format.Expr(f.When, opts.Vars))
		}

		rule := format.Rule[S]{Name: f.Name, Template: f.Format}
		switch len(preds) {
		case 0:
			// nil predicate: always matches
		case 1:
			rule.When = preds[0]
		default:
			rule.When = format.And(preds...)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}
