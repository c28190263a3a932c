package placeholder

import "sync"

// Registry is a thread-safe identity set of providers.
// It uses sync.RWMutex for the read-heavy resolution workload.
//
// Iteration order over providers is unspecified: when several providers
// resolve the same token, which one wins is deterministic only for a fixed
// membership snapshot, not across process runs. Register providers with
// disjoint token sets if that matters.
type Registry[S any] struct {
	mu        sync.RWMutex
	providers map[Provider[S]]struct{}
}

// NewRegistry creates a new empty registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{
		providers: make(map[Provider[S]]struct{}),
	}
}

// Register adds a provider and reports whether it was newly added.
// The provider is visible to the next resolution call immediately.
//
// Panics if p is nil. Providers must be comparable values; pointer
// implementations (NewFunc, NewStatic, NewAttrs all return pointers)
// satisfy this.
func (r *Registry[S]) Register(p Provider[S]) bool {
	if p == nil {
		panic("chatfmt: nil placeholder provider")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p]; ok {
		return false
	}
	r.providers[p] = struct{}{}
	return true
}

// Unregister removes a provider and reports whether it was present.
func (r *Registry[S]) Unregister(p Provider[S]) bool {
	if p == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p]; !ok {
		return false
	}
	delete(r.providers, p)
	return true
}

// Snapshot returns a point-in-time copy of the registered providers.
// The slice is owned by the caller; mutating it does not affect the registry.
// Order is unspecified.
func (r *Registry[S]) Snapshot() []Provider[S] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider[S], 0, len(r.providers))
	for p := range r.providers {
		providers = append(providers, p)
	}
	return providers
}

// Len returns the number of registered providers.
func (r *Registry[S]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// Clear removes all providers.
func (r *Registry[S]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = make(map[Provider[S]]struct{})
}

// Replace resolves all placeholder tokens in text against a snapshot of the
// registry. It is equivalent to ReplaceAll(subject, text, r.Snapshot()).
func (r *Registry[S]) Replace(subject S, text string) (string, Stats, error) {
	return ReplaceAll(subject, text, r.Snapshot())
}
