package placeholder

import "strconv"

// Provider resolves placeholder tokens for a subject.
//
// The subject type S is opaque to the engine: providers are the only code
// that looks inside it. Resolve returns the replacement text and true when
// the provider recognizes the token, or ("", false) when it does not.
// An empty replacement with ok=true is a valid resolution and replaces the
// token with nothing.
//
// Providers must be comparable values (pointers by convention) so the
// registry can track them by identity. Providers must not block: resolution
// runs inline on the message path and is expected to be an in-memory lookup.
type Provider[S any] interface {
	Resolve(subject S, token string) (string, bool)
}

// Func is a Provider backed by a single function.
// Create with NewFunc. The pointer returned by NewFunc is the provider's
// identity for Register/Unregister.
type Func[S any] struct {
	fn func(subject S, token string) (string, bool)
}

// NewFunc wraps fn as a Provider.
//
// Example:
//
//	upper := placeholder.NewFunc(func(u User, token string) (string, bool) {
//	    if token == "username_upper" {
//	        return strings.ToUpper(u.Name), true
//	    }
//	    return "", false
//	})
func NewFunc[S any](fn func(subject S, token string) (string, bool)) *Func[S] {
	if fn == nil {
		panic("chatfmt: nil placeholder func")
	}
	return &Func[S]{fn: fn}
}

// Resolve implements Provider.
func (f *Func[S]) Resolve(subject S, token string) (string, bool) {
	return f.fn(subject, token)
}

// Static is a Provider with a fixed token-to-value mapping.
// It ignores the subject. Create with NewStatic.
type Static[S any] struct {
	values map[string]string
}

// NewStatic creates a provider from a fixed mapping.
// The map is copied; later changes to the argument are not observed.
func NewStatic[S any](values map[string]string) *Static[S] {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Static[S]{values: copied}
}

// Resolve implements Provider.
func (s *Static[S]) Resolve(_ S, token string) (string, bool) {
	v, ok := s.values[token]
	return v, ok
}

// Attrs is a Provider that maps token names to subject accessors.
// It is the usual way to expose identity placeholders such as the sender's
// name, display name, or current server. Create with NewAttrs.
type Attrs[S any] struct {
	attrs map[string]func(S) string
}

// NewAttrs creates a provider from token accessors.
//
// Example:
//
//	std := placeholder.NewAttrs(map[string]func(User) string{
//	    "username":     func(u User) string { return u.Name },
//	    "display_name": func(u User) string { return u.DisplayName },
//	    "server":       func(u User) string { return u.Server },
//	})
func NewAttrs[S any](attrs map[string]func(S) string) *Attrs[S] {
	copied := make(map[string]func(S) string, len(attrs))
	for k, fn := range attrs {
		if fn == nil {
			panic("chatfmt: nil accessor for token " + strconv.Quote(k))
		}
		copied[k] = fn
	}
	return &Attrs[S]{attrs: copied}
}

// Resolve implements Provider.
func (a *Attrs[S]) Resolve(subject S, token string) (string, bool) {
	fn, ok := a.attrs[token]
	if !ok {
		return "", false
	}
	return fn(subject), true
}
