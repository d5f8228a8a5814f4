package services_test

import (
	"testing"
	"time"

	"maison/internal/models"
	"maison/internal/repositories"
	"maison/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(offset, limit int) ([]models.Product, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetFull(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetAllFull(offset, limit int) ([]models.Product, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) InUse(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func TestProductService_Create(t *testing.T) {
	mockRepo := new(MockProductRepository)
	notifier := newRecordingNotifier()
	productService := services.NewProductService(mockRepo, notifier)

	product := &models.Product{Name: "Velvet Sofa", Price: 100, Stock: 10, CategoryID: 1}
	full := &models.Product{
		ID: 1, Name: "Velvet Sofa", Price: 100, Stock: 10, CategoryID: 1,
		Category: &models.Category{ID: 1, Name: "Sofas"},
	}

	mockRepo.On("Create", product).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = 1
	}).Return(nil).Once()
	mockRepo.On("GetFull", uint(1)).Return(full, nil).Once()

	created, err := productService.Create(product)
	assert.NoError(t, err)
	assert.Equal(t, full, created)

	// The announcement fires after the product is stored
	assert.Equal(t, "Velvet Sofa", waitFor(t, notifier.products))
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	notifier := newRecordingNotifier()
	productService := services.NewProductService(mockRepo, notifier)

	product := &models.Product{Name: "Broken", Price: 1, CategoryID: 1}
	mockRepo.On("Create", product).Return(assert.AnError).Once()

	_, err := productService.Create(product)
	assert.Error(t, err)

	// No announcement for a product that was never stored
	select {
	case <-notifier.products:
		t.Fatal("announcement sent for a failed create")
	case <-time.After(100 * time.Millisecond):
	}
	mockRepo.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	productService := services.NewProductService(mockRepo, nil)

	// Test deleting an unreferenced product
	mockRepo.On("GetByID", uint(2)).Return(&models.Product{ID: 2}, nil).Once()
	mockRepo.On("InUse", uint(2)).Return(false, nil).Once()
	mockRepo.On("Delete", uint(2)).Return(nil).Once()
	assert.NoError(t, productService.Delete(2))
	mockRepo.AssertExpectations(t)

	// Test a product referenced by order history stays
	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1}, nil).Once()
	mockRepo.On("InUse", uint(1)).Return(true, nil).Once()
	err := productService.Delete(1)
	assert.ErrorIs(t, err, repositories.ErrProductInUse)
	mockRepo.AssertNotCalled(t, "Delete", uint(1))
	mockRepo.AssertExpectations(t)

	// Test unknown product
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	err = productService.Delete(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
