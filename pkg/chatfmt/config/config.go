package config

import "fmt"

// DefaultPermissionPrefix is prepended to a rule name to form the
// permission node checked when require-permission is on.
const DefaultPermissionPrefix = "chat.format."

// Config is the engine's on-disk configuration.
//
// The formats list is ordered: earlier entries win when several apply to
// the same sender, so the conventional catch-all entry goes last.
type Config struct {
	// Formats is the ordered rule list.
	Formats []FormatSpec `yaml:"formats" json:"formats"`

	// RequirePermission additionally gates every rule behind the node
	// PermissionPrefix + rule name.
	RequirePermission bool `yaml:"require-permission" json:"require-permission"`

	// PermissionPrefix overrides DefaultPermissionPrefix.
	PermissionPrefix string `yaml:"permission-prefix" json:"permission-prefix"`
}

// FormatSpec describes one format rule.
type FormatSpec struct {
	// Name identifies the rule in logs and permission nodes.
	Name string `yaml:"name" json:"name"`

	// Format is the display template, including the message body token.
	Format string `yaml:"format" json:"format"`

	// Permission gates the rule behind a permission node. Empty means no
	// permission check.
	Permission string `yaml:"permission" json:"permission"`

	// When gates the rule behind a boolean expression over subject
	// attributes (see the expr package). Empty means no expression check.
	When string `yaml:"when" json:"when"`
}

// ValidationError reports an invalid configuration document.
type ValidationError struct {
	// Rule is the name (or index, when unnamed) of the offending rule.
	Rule string
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: rule %s: %s", e.Rule, e.Message)
}

// Validate checks the document for structural problems.
// An empty formats list is valid: selection then never matches and the
// caller decides what to do about it.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Formats))
	for i, f := range c.Formats {
		label := f.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if f.Name == "" {
			return &ValidationError{Rule: label, Message: "missing name"}
		}
		if f.Format == "" {
			return &ValidationError{Rule: label, Message: "missing format template"}
		}
		if seen[f.Name] {
			return &ValidationError{Rule: label, Message: "duplicate name"}
		}
		seen[f.Name] = true
	}
	return nil
}

// permissionPrefix returns the configured prefix or the default.
func (c Config) permissionPrefix() string {
	if c.PermissionPrefix != "" {
		return c.PermissionPrefix
	}
	return DefaultPermissionPrefix
}
