package services

import (
	"maison/internal/models"
	"maison/internal/repositories"
)

// OrderCreateRequest is the order placement payload.
type OrderCreateRequest struct {
	Items []models.OrderLine `json:"items" validate:"required,min=1,dive"`

	PaymentMethod     string `json:"payment_method"`
	CustomerEmail     string `json:"customer_email"`
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerAddress   string `json:"customer_address"`
	CustomerCity      string `json:"customer_city"`
	CustomerCountry   string `json:"customer_country"`
	CustomerZip       string `json:"customer_zip"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	notifier  Notifier
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &OrderService{orderRepo: orderRepo, notifier: notifier}
}

// Place creates an order atomically. userID is nil for anonymous
// checkouts. The conversion event fires only after the transaction
// committed, so a marketing failure can never fail the sale.
func (s *OrderService) Place(userID *uint, req OrderCreateRequest) (*models.Order, error) {
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}
	order := &models.Order{
		Status:            "completed",
		UserID:            userID,
		PaymentMethod:     paymentMethod,
		CustomerEmail:     req.CustomerEmail,
		CustomerFirstName: req.CustomerFirstName,
		CustomerLastName:  req.CustomerLastName,
		CustomerAddress:   req.CustomerAddress,
		CustomerCity:      req.CustomerCity,
		CustomerCountry:   req.CustomerCountry,
		CustomerZip:       req.CustomerZip,
	}

	placed, err := s.orderRepo.Place(order, req.Items)
	if err != nil {
		return nil, err
	}

	go s.notifier.SendEvent("Purchase", map[string]interface{}{
		"currency":  "AED",
		"value":     placed.TotalAmount,
		"order_id":  placed.ID,
		"num_items": len(placed.Items),
	})

	return placed, nil
}

// List returns orders visible to the caller: admins see everything,
// regular users only their own.
func (s *OrderService) List(caller *models.User, offset, limit int) ([]models.Order, error) {
	var userID *uint
	if !caller.CanManageCatalog() {
		userID = &caller.ID
	}
	return s.orderRepo.GetAll(userID, offset, limit)
}

// Get returns a single order with its items.
func (s *OrderService) Get(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}
