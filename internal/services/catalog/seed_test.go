package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProductsHaveUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range SeedProducts() {
		require.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate seed id %s", p.ID)
		seen[p.ID] = true

		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.ProductType)
		assert.Greater(t, p.Price, 0.0)
		assert.Equal(t, "INR", p.Currency)
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `products:
  - id: prod_custom_1
    title: Custom Laptop
    brand: Custom
    category: electronics
    product_type: laptop
    price: 29999
    currency: INR
    rating: 4.0
    review_count: 120
    features:
      - 16GB RAM
  - id: prod_samsung_m34
    title: Overridden Title
    brand: Samsung
    category: electronics
    product_type: smartphone
    price: 16999
    currency: INR
    rating: 4.2
    review_count: 13000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	products, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod_custom_1", products[0].ID)
	assert.Equal(t, 29999.0, products[0].Price)
	assert.Equal(t, []string{"16GB RAM"}, products[0].Features)
}

func TestLoadSeedFileMissing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSeedFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: {not: [a list"), 0o644))
	_, err := LoadSeedFile(path)
	assert.Error(t, err)
}

func TestLoadCatalogProductsWithOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `products:
  - id: prod_samsung_m34
    title: Overridden Title
    brand: Samsung
    product_type: smartphone
    price: 16999
    currency: INR
    rating: 4.2
    review_count: 13000
  - id: prod_new_entry
    title: New Entry
    brand: Acme
    product_type: laptop
    price: 10000
    currency: INR
    rating: 4.5
    review_count: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	merged, err := LoadCatalogProducts(path)
	require.NoError(t, err)
	assert.Len(t, merged, len(SeedProducts())+1)

	byID := make(map[string]int)
	for i, p := range merged {
		byID[p.ID] = i
	}
	assert.Equal(t, "Overridden Title", merged[byID["prod_samsung_m34"]].Title)
	assert.Contains(t, byID, "prod_new_entry")
}

func TestLoadCatalogProductsWithoutOverlay(t *testing.T) {
	products, err := LoadCatalogProducts("")
	require.NoError(t, err)
	assert.Len(t, products, len(SeedProducts()))
}

func TestMergeProductsEmptyExtra(t *testing.T) {
	base := SeedProducts()
	assert.Equal(t, base, MergeProducts(base, nil))
}
