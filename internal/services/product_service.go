package services

import (
	"log"

	"maison/internal/models"
	"maison/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	notifier Notifier
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, notifier Notifier) *ProductService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &ProductService{repo: repo, notifier: notifier}
}

// List retrieves a page of products.
func (s *ProductService) List(offset, limit int) ([]models.Product, error) {
	return s.repo.GetAll(offset, limit)
}

// Get retrieves a product with category and brand attached.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	return s.repo.GetFull(id)
}

// Catalog retrieves a page of products enriched with category and brand.
func (s *ProductService) Catalog(offset, limit int) ([]models.Product, error) {
	return s.repo.GetAllFull(offset, limit)
}

// Create stores a new product and announces it to the configured
// marketing channel. The announcement is fire-and-forget.
func (s *ProductService) Create(product *models.Product) (*models.Product, error) {
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	created, err := s.repo.GetFull(product.ID)
	if err != nil {
		return nil, err
	}

	go s.notifier.PostProduct(created.Name, created.Description, created.ImageURL, created.Price)

	return created, nil
}

// Update applies changes to an existing product and returns it with
// category and brand attached.
func (s *ProductService) Update(product *models.Product) (*models.Product, error) {
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return s.repo.GetFull(product.ID)
}

// Delete removes a product unless any order line references it. A
// referenced product must be deactivated (stock set to 0) instead,
// so historical orders keep their integrity.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	inUse, err := s.repo.InUse(id)
	if err != nil {
		return err
	}
	if inUse {
		return repositories.ErrProductInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	log.Printf("product %d deleted", id)
	return nil
}
