package catalog

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// BadgerCatalog is a catalog provider backed by persistent product
// storage. Relevance scoring is shared with the memory provider; only
// the product source differs.
type BadgerCatalog struct {
	config  *common.CatalogConfig
	logger  arbor.ILogger
	cache   interfaces.SearchCache
	storage interfaces.ProductStorage
}

var _ interfaces.CatalogProvider = (*BadgerCatalog)(nil)

// NewBadgerCatalog creates a persistent catalog provider. When the store
// is empty it is seeded with the built-in catalog (plus overlay file).
func NewBadgerCatalog(config *common.CatalogConfig, storage interfaces.ProductStorage, cache interfaces.SearchCache, logger arbor.ILogger) (*BadgerCatalog, error) {
	count, err := storage.CountProducts()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		products, err := LoadCatalogProducts(config.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := storage.SaveProducts(products); err != nil {
			return nil, err
		}
		logger.Info().Int("products", len(products)).Msg("Seeded persistent catalog")
	}

	return &BadgerCatalog{
		config:  config,
		logger:  logger,
		cache:   cache,
		storage: storage,
	}, nil
}

func (c *BadgerCatalog) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = c.config.MaxResults
	}

	key := CacheKey(query, limit)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	all, err := c.storage.ListProducts(0, 0)
	if err != nil {
		return nil, err
	}

	results := rankByRelevance(all, query, limit, c.config)
	results = EnsureUniqueIDs(results)

	c.cache.Put(key, results)
	c.logger.Debug().Str("query", query).Int("results", len(results)).Msg("Persistent catalog search completed")

	return results, nil
}

func (c *BadgerCatalog) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return c.storage.GetProduct(id)
}

func (c *BadgerCatalog) GetDetails(ctx context.Context, id string) (*models.Product, error) {
	base, err := c.storage.GetProduct(id)
	if err != nil {
		return nil, err
	}
	detailed := synthesizeDetails(*base)
	return &detailed, nil
}

func (c *BadgerCatalog) SimilarProducts(ctx context.Context, id string, limit int) ([]models.Product, error) {
	ref, err := c.storage.GetProduct(id)
	if err != nil {
		return nil, err
	}
	candidates, err := c.storage.ListByProductType(ref.ProductType, 0)
	if err != nil {
		return nil, err
	}
	return similarByPrice(candidates, ref, limit), nil
}
