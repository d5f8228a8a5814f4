package repositories

import "maison/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(offset, limit int) ([]models.Category, error)
	Create(category *models.Category) error
	Delete(id uint) error
}

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	GetAll() ([]models.Brand, error)
	Create(brand *models.Brand) error
	Delete(id uint) error
}

// StoreRepository defines the interface for store location data access.
type StoreRepository interface {
	GetAll() ([]models.StoreLocation, error)
	Create(store *models.StoreLocation) error
	Delete(id uint) error
}
