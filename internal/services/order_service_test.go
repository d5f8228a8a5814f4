package services_test

import (
	"testing"
	"time"

	"maison/internal/models"
	"maison/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Place(order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	args := m.Called(order, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(userID *uint, offset, limit int) ([]models.Order, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// recordingNotifier captures marketing calls on channels so tests can
// wait for the fire-and-forget goroutines.
type recordingNotifier struct {
	events   chan string
	products chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		events:   make(chan string, 4),
		products: make(chan string, 4),
	}
}

func (n *recordingNotifier) SendEvent(eventName string, customData map[string]interface{}) {
	n.events <- eventName
}

func (n *recordingNotifier) PostProduct(name, description, imageURL string, price float64) {
	n.products <- name
}

func waitFor(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notifier call")
		return ""
	}
}

func TestOrderService_Place(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	orderService := services.NewOrderService(mockRepo, notifier)

	userID := uint(3)
	lines := []models.OrderLine{{ProductID: 1, Quantity: 2}}
	placed := &models.Order{
		ID:          10,
		TotalAmount: 200,
		Status:      "completed",
		UserID:      &userID,
		Items:       []models.OrderItem{{OrderID: 10, ProductID: 1, Quantity: 2, PriceAtTime: 100}},
	}

	var shell *models.Order
	mockRepo.On("Place", mock.AnythingOfType("*models.Order"), lines).Run(func(args mock.Arguments) {
		shell = args.Get(0).(*models.Order)
	}).Return(placed, nil).Once()

	order, err := orderService.Place(&userID, services.OrderCreateRequest{
		Items:         lines,
		CustomerEmail: "alice@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, placed, order)

	// The shell passed down carries status, payment default and caller
	assert.Equal(t, "completed", shell.Status)
	assert.Equal(t, "cod", shell.PaymentMethod)
	assert.Equal(t, &userID, shell.UserID)
	assert.Equal(t, "alice@example.com", shell.CustomerEmail)

	// The conversion event fires after the commit
	assert.Equal(t, "Purchase", waitFor(t, notifier.events))
	mockRepo.AssertExpectations(t)
}

func TestOrderService_Place_ExplicitPaymentMethod(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(mockRepo, nil)

	lines := []models.OrderLine{{ProductID: 1, Quantity: 1}}
	var shell *models.Order
	mockRepo.On("Place", mock.AnythingOfType("*models.Order"), lines).Run(func(args mock.Arguments) {
		shell = args.Get(0).(*models.Order)
	}).Return(&models.Order{ID: 11}, nil).Once()

	_, err := orderService.Place(nil, services.OrderCreateRequest{
		Items:         lines,
		PaymentMethod: "card",
	})
	assert.NoError(t, err)
	assert.Equal(t, "card", shell.PaymentMethod)
	assert.Nil(t, shell.UserID)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_Place_RepositoryError(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier()
	orderService := services.NewOrderService(mockRepo, notifier)

	lines := []models.OrderLine{{ProductID: 99, Quantity: 1}}
	mockRepo.On("Place", mock.AnythingOfType("*models.Order"), lines).
		Return(nil, assert.AnError).Once()

	_, err := orderService.Place(nil, services.OrderCreateRequest{Items: lines})
	assert.Error(t, err)

	// No conversion event for a failed sale
	select {
	case <-notifier.events:
		t.Fatal("event sent for a failed order")
	case <-time.After(100 * time.Millisecond):
	}
	mockRepo.AssertExpectations(t)
}

func TestOrderService_List(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(mockRepo, nil)

	// Admins see every order: the repository gets a nil user filter
	admin := &models.User{ID: 1, IsAdmin: true}
	mockRepo.On("GetAll", (*uint)(nil), 0, 100).Return([]models.Order{{ID: 1}, {ID: 2}}, nil).Once()
	orders, err := orderService.List(admin, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	mockRepo.AssertExpectations(t)

	// Regular users only see their own
	user := &models.User{ID: 42}
	mockRepo.On("GetAll", mock.MatchedBy(func(id *uint) bool {
		return id != nil && *id == 42
	}), 0, 100).Return([]models.Order{{ID: 3}}, nil).Once()
	orders, err = orderService.List(user, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	mockRepo.AssertExpectations(t)
}
