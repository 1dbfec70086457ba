package catalog

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// MemoryCatalog is the default catalog provider: an in-process product
// table scored for relevance on every search, with results cached for
// the process lifetime.
type MemoryCatalog struct {
	config   *common.CatalogConfig
	logger   arbor.ILogger
	cache    interfaces.SearchCache
	mu       sync.RWMutex
	products []models.Product
	byID     map[string]int
}

var _ interfaces.CatalogProvider = (*MemoryCatalog)(nil)

// NewMemoryCatalog creates a memory catalog over the given products.
// A nil product slice loads the built-in seed catalog, plus the overlay
// file when configured.
func NewMemoryCatalog(config *common.CatalogConfig, cache interfaces.SearchCache, logger arbor.ILogger, products []models.Product) (*MemoryCatalog, error) {
	if products == nil {
		loaded, err := LoadCatalogProducts(config.SeedFile)
		if err != nil {
			return nil, err
		}
		products = loaded
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	logger.Debug().Int("products", len(products)).Msg("Memory catalog initialized")

	return &MemoryCatalog{
		config:   config,
		logger:   logger,
		cache:    cache,
		products: products,
		byID:     byID,
	}, nil
}

// Search scores the whole table against the query and returns the best
// matches, serving repeated queries from the cache.
func (c *MemoryCatalog) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = c.config.MaxResults
	}

	key := CacheKey(query, limit)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug().Str("query", query).Int("results", len(cached)).Msg("Catalog search cache hit")
		return cached, nil
	}

	c.mu.RLock()
	snapshot := c.products
	c.mu.RUnlock()

	results := rankByRelevance(snapshot, query, limit, c.config)
	results = EnsureUniqueIDs(results)

	c.cache.Put(key, results)
	c.logger.Debug().Str("query", query).Int("results", len(results)).Msg("Catalog search completed")

	return results, nil
}

// GetByID returns the listing-level product for an id.
func (c *MemoryCatalog) GetByID(ctx context.Context, id string) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	p := c.products[i].Clone()
	return &p, nil
}

// GetDetails returns the product with detail fields synthesized.
func (c *MemoryCatalog) GetDetails(ctx context.Context, id string) (*models.Product, error) {
	base, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detailed := synthesizeDetails(*base)
	return &detailed, nil
}

// SimilarProducts returns same-type products ordered by price proximity.
func (c *MemoryCatalog) SimilarProducts(ctx context.Context, id string, limit int) ([]models.Product, error) {
	ref, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	candidates := make([]models.Product, 0, 8)
	for _, p := range c.products {
		if p.ProductType == ref.ProductType {
			candidates = append(candidates, p)
		}
	}
	c.mu.RUnlock()

	return similarByPrice(candidates, ref, limit), nil
}

// All returns a copy of the full product table. Used by the refresher
// to sync the persistent store.
func (c *MemoryCatalog) All() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.products...)
}

// EnsureUniqueIDs regenerates colliding product IDs so every result set
// carries unique identifiers.
func EnsureUniqueIDs(products []models.Product) []models.Product {
	seen := make(map[string]bool, len(products))
	for i := range products {
		if products[i].ID == "" || seen[products[i].ID] {
			products[i].ID = common.NewProductID()
		}
		seen[products[i].ID] = true
	}
	return products
}
