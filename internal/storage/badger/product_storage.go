package badger

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// ProductStorage implements the ProductStorage interface for Badger
type ProductStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewProductStorage creates a new ProductStorage instance
func NewProductStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ProductStorage {
	return &ProductStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ProductStorage) SaveProduct(product *models.Product) error {
	if product.ID == "" {
		return fmt.Errorf("product ID is required")
	}
	if err := s.db.Store().Upsert(product.ID, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (s *ProductStorage) SaveProducts(products []models.Product) error {
	for i := range products {
		if err := s.SaveProduct(&products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductStorage) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Store().Get(id, &product); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *ProductStorage) ListProducts(limit, offset int) ([]models.Product, error) {
	query := badgerhold.Where("ID").Ne("") // Select all
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Skip(offset)
	}

	var products []models.Product
	if err := s.db.Store().Find(&products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductStorage) ListByCategory(category string, limit int) ([]models.Product, error) {
	query := badgerhold.Where("Category").Eq(category)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []models.Product
	if err := s.db.Store().Find(&products, query); err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

func (s *ProductStorage) ListByProductType(productType string, limit int) ([]models.Product, error) {
	query := badgerhold.Where("ProductType").Eq(productType)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []models.Product
	if err := s.db.Store().Find(&products, query); err != nil {
		return nil, fmt.Errorf("failed to list products by type: %w", err)
	}
	return products, nil
}

func (s *ProductStorage) CountProducts() (int, error) {
	count, err := s.db.Store().Count(&models.Product{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return int(count), nil
}

func (s *ProductStorage) ClearAll() error {
	return s.db.Store().DeleteMatching(&models.Product{}, nil)
}
