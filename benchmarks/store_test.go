package benchmarks

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/chatfmt/pkg/chatfmt/metadata"
)

func BenchmarkMemoryStore_Set(b *testing.B) {
	store := metadata.NewMemoryStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Set("scope", "key", "value")
	}
}

func BenchmarkMemoryStore_Get(b *testing.B) {
	store := metadata.NewMemoryStore()
	_ = store.Set("scope", "key", "value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get("scope", "key")
	}
}

func BenchmarkSQLiteStore_Set(b *testing.B) {
	store, err := metadata.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Set("scope", "key", "value")
	}
}

func BenchmarkSQLiteStore_Get(b *testing.B) {
	store, err := metadata.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	_ = store.Set("scope", "key", "value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get("scope", "key")
	}
}

func BenchmarkMemoryStore_List_100(b *testing.B) {
	store := metadata.NewMemoryStore()
	for i := 0; i < 100; i++ {
		_ = store.Set("scope", fmt.Sprintf("key-%d", i), "value")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.List("scope")
	}
}
