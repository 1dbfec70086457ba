package interfaces

import (
	"context"

	"github.com/ternarybob/cognicart/internal/models"
)

// CatalogProvider is a source of products. The memory provider is the
// default; badger-backed and scrape-backed providers implement the same
// surface. Search treats the provider as a black box returning listing
// candidates in relevance order.
type CatalogProvider interface {
	// Search returns up to limit products relevant to the free-text query,
	// best match first.
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)

	// GetByID returns the listing-level product for an id.
	// Returns models.ErrProductNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// GetDetails returns the product with detail-level fields populated
	// (description, reviews, specifications, pros, cons).
	GetDetails(ctx context.Context, id string) (*models.Product, error)

	// SimilarProducts returns products of the same type ordered by price
	// proximity to the given product.
	SimilarProducts(ctx context.Context, id string, limit int) ([]models.Product, error)
}

// SearchCache caches search results for the process lifetime. Entries
// are append-only; a concurrent duplicate write of identical content is
// harmless. Clear exists for tests and catalog re-syncs.
type SearchCache interface {
	Get(key string) ([]models.Product, bool)
	Put(key string, products []models.Product)
	Clear()
	Len() int
}
