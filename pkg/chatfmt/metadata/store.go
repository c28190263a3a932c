// Package metadata provides persistent key/value storage for placeholder
// source data, such as per-server display settings or user titles.
//
// Values are grouped by scope (typically the subject's server or UUID) and
// exposed to the engine through Provider, which resolves placeholder tokens
// against a store. Implementations must be safe for concurrent use.
package metadata

import "errors"

// Store persists scoped placeholder values.
type Store interface {
	// Get retrieves the value for a key in a scope.
	// Returns ErrNotFound if the key doesn't exist.
	Get(scope, key string) (string, error)

	// Set stores a value, overwriting any existing value for (scope, key).
	Set(scope, key, value string) error

	// Delete removes a key. Returns nil if the key doesn't exist.
	Delete(scope, key string) error

	// List returns all key/value pairs in a scope.
	// Returns an empty map (not an error) for an unknown scope.
	List(scope string) (map[string]string, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the key doesn't exist in the scope.
	ErrNotFound = errors.New("metadata not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("metadata store closed")
)
