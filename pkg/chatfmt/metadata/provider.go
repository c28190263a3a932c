package metadata

import "strings"

// Provider resolves placeholder tokens from a metadata store.
//
// Tokens carrying the configured prefix (default "meta_") are stripped and
// looked up in the store under the subject's scope. A miss, and any store
// error, resolves to no match so the message path never fails on storage
// trouble.
type Provider[S any] struct {
	store  Store
	scope  func(S) string
	prefix string
}

// DefaultTokenPrefix is the token prefix recognized by Provider:
// {meta_motd} looks up key "motd".
const DefaultTokenPrefix = "meta_"

// ProviderOption configures a Provider.
type ProviderOption[S any] func(*Provider[S])

// WithTokenPrefix overrides the recognized token prefix.
// An empty prefix makes the provider try every token against the store.
func WithTokenPrefix[S any](prefix string) ProviderOption[S] {
	return func(p *Provider[S]) {
		p.prefix = prefix
	}
}

// NewProvider creates a placeholder provider backed by store.
// scope derives the lookup scope from a subject, typically the server the
// subject is connected to.
//
// Example:
//
//	store, _ := metadata.NewSQLiteStore("./chatmeta.db")
//	engine.RegisterPlaceholder(metadata.NewProvider(store, func(u User) string {
//	    return u.Server
//	}))
//	// "{meta_motd}" resolves to the value stored under (u.Server, "motd")
func NewProvider[S any](store Store, scope func(S) string, opts ...ProviderOption[S]) *Provider[S] {
	if store == nil {
		panic("chatfmt: nil metadata store")
	}
	if scope == nil {
		panic("chatfmt: nil metadata scope func")
	}

	p := &Provider[S]{
		store:  store,
		scope:  scope,
		prefix: DefaultTokenPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve implements the placeholder provider contract.
func (p *Provider[S]) Resolve(subject S, token string) (string, bool) {
	key, ok := strings.CutPrefix(token, p.prefix)
	if !ok || key == "" {
		return "", false
	}

	value, err := p.store.Get(p.scope(subject), key)
	if err != nil {
		// ErrNotFound and storage failures alike are a miss: providers
		// must degrade rather than fail the substitution.
		return "", false
	}
	return value, true
}
