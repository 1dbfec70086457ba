package interfaces

import "github.com/ternarybob/cognicart/internal/models"

// ProductStorage persists catalog products.
type ProductStorage interface {
	// SaveProduct upserts a single product by ID.
	SaveProduct(product *models.Product) error

	// SaveProducts upserts a batch of products.
	SaveProducts(products []models.Product) error

	// GetProduct returns a product by ID, models.ErrProductNotFound if absent.
	GetProduct(id string) (*models.Product, error)

	// ListProducts returns up to limit products, skipping offset.
	ListProducts(limit, offset int) ([]models.Product, error)

	// ListByCategory returns products in a category.
	ListByCategory(category string, limit int) ([]models.Product, error)

	// ListByProductType returns products of a product type.
	ListByProductType(productType string, limit int) ([]models.Product, error)

	// CountProducts returns the number of stored products.
	CountProducts() (int, error)

	// ClearAll removes every stored product.
	ClearAll() error
}
