package placeholder

import "strconv"

// Permissions is the external permission-check collaborator.
// Implementations are expected to answer from cached in-memory state;
// the resolution path never blocks waiting for them.
type Permissions[S any] interface {
	HasPermission(subject S, node string) bool
}

// DefaultPermissionPrefix is the token prefix recognized by Permission
// providers: {has_perm_some.node} resolves to "true" or "false".
const DefaultPermissionPrefix = "has_perm_"

// Permission resolves permission-derived tokens through a Permissions
// collaborator. Create with NewPermission.
type Permission[S any] struct {
	perms  Permissions[S]
	prefix string
}

// PermissionOption configures a Permission provider.
type PermissionOption[S any] func(*Permission[S])

// WithPermissionPrefix overrides the recognized token prefix.
// Default: DefaultPermissionPrefix.
func WithPermissionPrefix[S any](prefix string) PermissionOption[S] {
	return func(p *Permission[S]) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// NewPermission creates a provider that resolves {has_perm_<node>} tokens
// to "true" or "false" by asking perms.
//
// Example:
//
//	reg.Register(placeholder.NewPermission[User](perms))
//	// "{has_perm_chat.staff}" -> "true" for staff subjects
func NewPermission[S any](perms Permissions[S], opts ...PermissionOption[S]) *Permission[S] {
	if perms == nil {
		panic("chatfmt: nil permissions")
	}

	p := &Permission[S]{
		perms:  perms,
		prefix: DefaultPermissionPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve implements Provider.
func (p *Permission[S]) Resolve(subject S, token string) (string, bool) {
	if len(token) <= len(p.prefix) || token[:len(p.prefix)] != p.prefix {
		return "", false
	}
	node := token[len(p.prefix):]
	return strconv.FormatBool(p.perms.HasPermission(subject, node)), true
}
