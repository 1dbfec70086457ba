package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/cognicart/internal/models"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		want  string
	}{
		{name: "lowercased", query: "Laptop Under 40000", limit: 10, want: "laptop under 40000_10"},
		{name: "trimmed", query: "  earbuds  ", limit: 5, want: "earbuds_5"},
		{name: "limit differentiates", query: "earbuds", limit: 3, want: "earbuds_3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CacheKey(tt.query, tt.limit))
		})
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	products := []models.Product{{ID: "p1", Title: "One"}, {ID: "p2", Title: "Two"}}
	cache.Put("key", products)

	got, ok := cache.Get("key")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)

	// Mutating the returned slice must not leak into the cache.
	got[0].Title = "mutated"
	again, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "One", again[0].Title)
}

func TestMemoryCacheClear(t *testing.T) {
	cache := NewMemoryCache()
	cache.Put("a", nil)
	cache.Put("b", []models.Product{{ID: "x"}})
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("b")
	assert.False(t, ok)
}
