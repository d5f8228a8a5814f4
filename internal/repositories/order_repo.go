package repositories

import "maison/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Place atomically creates the order and its items, validating
	// and deducting stock for every line. On any failure nothing is
	// persisted. The returned order has its items attached.
	Place(order *models.Order, lines []models.OrderLine) (*models.Order, error)
	// GetAll returns a page of orders with items attached. A non-nil
	// userID restricts the listing to that user's orders.
	GetAll(userID *uint, offset, limit int) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
}
