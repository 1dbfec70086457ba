package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/models"
)

func newTestCatalog(t *testing.T) *MemoryCatalog {
	t.Helper()
	cfg := common.DefaultConfig()
	c, err := NewMemoryCatalog(&cfg.Catalog, NewMemoryCache(), arbor.NewLogger(), nil)
	require.NoError(t, err)
	return c
}

func TestMemoryCatalogSearch(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	results, err := c.Search(ctx, "smartphone", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 5)
	for _, p := range results {
		assert.Equal(t, "smartphone", p.ProductType)
	}
}

func TestMemoryCatalogSearchCacheHit(t *testing.T) {
	cfg := common.DefaultConfig()
	cache := NewMemoryCache()
	c, err := NewMemoryCatalog(&cfg.Catalog, cache, arbor.NewLogger(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := c.Search(ctx, "Laptop Under 40000", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// Same query with different casing hits the same entry.
	second, err := c.Search(ctx, "laptop under 40000", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestMemoryCatalogGetByID(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	p, err := c.GetByID(ctx, "prod_iphone_13")
	require.NoError(t, err)
	assert.Equal(t, "Apple", p.Brand)

	// The returned copy is detached from catalog state.
	p.Title = "mutated"
	again, err := c.GetByID(ctx, "prod_iphone_13")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Title)
}

func TestMemoryCatalogGetByIDNotFound(t *testing.T) {
	c := newTestCatalog(t)
	_, err := c.GetByID(context.Background(), "prod_nope")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestMemoryCatalogGetDetails(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	detailed, err := c.GetDetails(ctx, "prod_samsung_m34")
	require.NoError(t, err)
	assert.NotEmpty(t, detailed.Description)
	assert.NotEmpty(t, detailed.Reviews)
	assert.NotEmpty(t, detailed.Specifications)

	// Detail synthesis stays out of the listing-level view.
	listing, err := c.GetByID(ctx, "prod_samsung_m34")
	require.NoError(t, err)
	assert.Empty(t, listing.Reviews)
}

func TestMemoryCatalogSimilarProducts(t *testing.T) {
	c := newTestCatalog(t)

	similar, err := c.SimilarProducts(context.Background(), "prod_sony_whch720n", 5)
	require.NoError(t, err)
	require.NotEmpty(t, similar)
	for _, p := range similar {
		assert.Equal(t, "headphones", p.ProductType)
		assert.NotEqual(t, "prod_sony_whch720n", p.ID)
	}
}

func TestEnsureUniqueIDs(t *testing.T) {
	products := []models.Product{
		{ID: "dup", Title: "First"},
		{ID: "dup", Title: "Second"},
		{ID: "", Title: "Blank"},
		{ID: "ok", Title: "Fine"},
	}

	out := EnsureUniqueIDs(products)
	seen := make(map[string]bool)
	for _, p := range out {
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, "dup", out[0].ID)
	assert.Equal(t, "ok", out[3].ID)
}
