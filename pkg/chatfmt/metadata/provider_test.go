package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatfmt/pkg/chatfmt/metadata"
)

type user struct {
	name   string
	server string
}

func serverScope(u user) string { return u.server }

func TestProvider_Resolve(t *testing.T) {
	store := metadata.NewMemoryStore()
	require.NoError(t, store.Set("hub", "motd", "welcome to the hub"))

	p := metadata.NewProvider(store, serverScope)
	u := user{name: "Alice", server: "hub"}

	tests := []struct {
		name     string
		token    string
		want     string
		resolved bool
	}{
		{"known key", "meta_motd", "welcome to the hub", true},
		{"unknown key", "meta_missing", "", false},
		{"no prefix", "motd", "", false},
		{"bare prefix", "meta_", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := p.Resolve(u, tt.token)
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestProvider_ScopeSeparation(t *testing.T) {
	store := metadata.NewMemoryStore()
	require.NoError(t, store.Set("hub", "motd", "hub motd"))
	require.NoError(t, store.Set("survival", "motd", "survival motd"))

	p := metadata.NewProvider(store, serverScope)

	v, ok := p.Resolve(user{server: "hub"}, "meta_motd")
	assert.True(t, ok)
	assert.Equal(t, "hub motd", v)

	v, ok = p.Resolve(user{server: "survival"}, "meta_motd")
	assert.True(t, ok)
	assert.Equal(t, "survival motd", v)

	_, ok = p.Resolve(user{server: "creative"}, "meta_motd")
	assert.False(t, ok)
}

func TestProvider_CustomPrefix(t *testing.T) {
	store := metadata.NewMemoryStore()
	require.NoError(t, store.Set("hub", "motd", "x"))

	p := metadata.NewProvider(store, serverScope, metadata.WithTokenPrefix[user]("db:"))

	_, ok := p.Resolve(user{server: "hub"}, "meta_motd")
	assert.False(t, ok)

	v, ok := p.Resolve(user{server: "hub"}, "db:motd")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

// A closed store degrades to "no match" rather than failing the message.
func TestProvider_StoreErrorIsMiss(t *testing.T) {
	store := metadata.NewMemoryStore()
	require.NoError(t, store.Set("hub", "motd", "x"))
	require.NoError(t, store.Close())

	p := metadata.NewProvider(store, serverScope)

	_, ok := p.Resolve(user{server: "hub"}, "meta_motd")
	assert.False(t, ok)
}

func TestNewProvider_NilArgsPanic(t *testing.T) {
	store := metadata.NewMemoryStore()

	assert.Panics(t, func() { metadata.NewProvider[user](nil, serverScope) })
	assert.Panics(t, func() { metadata.NewProvider[user](store, nil) })
}
