package repositories

import "maison/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(offset, limit int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// GetFull loads the product with its brand and category attached.
	GetFull(id uint) (*models.Product, error)
	// GetAllFull loads products with brand and category attached.
	GetAllFull(offset, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// InUse reports whether any order item references the product.
	InUse(id uint) (bool, error)
}
