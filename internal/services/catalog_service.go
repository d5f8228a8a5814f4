package services

import (
	"maison/internal/models"
	"maison/internal/repositories"
)

// CatalogService handles the simple reference entities: categories,
// brands and store locations.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	brandRepo    repositories.BrandRepository
	storeRepo    repositories.StoreRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	categoryRepo repositories.CategoryRepository,
	brandRepo repositories.BrandRepository,
	storeRepo repositories.StoreRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		storeRepo:    storeRepo,
	}
}

func (s *CatalogService) ListCategories(offset, limit int) ([]models.Category, error) {
	return s.categoryRepo.GetAll(offset, limit)
}

func (s *CatalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

func (s *CatalogService) DeleteCategory(id uint) error {
	return s.categoryRepo.Delete(id)
}

func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	return s.brandRepo.GetAll()
}

func (s *CatalogService) CreateBrand(brand *models.Brand) error {
	return s.brandRepo.Create(brand)
}

func (s *CatalogService) DeleteBrand(id uint) error {
	return s.brandRepo.Delete(id)
}

func (s *CatalogService) ListStores() ([]models.StoreLocation, error) {
	return s.storeRepo.GetAll()
}

func (s *CatalogService) CreateStore(store *models.StoreLocation) error {
	return s.storeRepo.Create(store)
}

func (s *CatalogService) DeleteStore(id uint) error {
	return s.storeRepo.Delete(id)
}
