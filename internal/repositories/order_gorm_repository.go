package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"maison/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Place runs the whole order placement in a single transaction.
// Product rows are read with a row-level lock so two concurrent
// orders racing on the same stock serialize their read-then-write.
func (r *GORMOrderRepository) Place(order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Create the order shell first to obtain an ID for the items.
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		var total float64
		for _, line := range lines {
			// sqlite has a single writer per database and no FOR
			// UPDATE syntax; the transaction alone serializes there.
			// On postgres the row lock makes the read-then-write on
			// stock serializable.
			query := tx
			if tx.Dialector.Name() != "sqlite" {
				query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var product models.Product
			err := query.First(&product, "id = ?", line.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return fmt.Errorf("failed to fetch product %d: %w", line.ProductID, err)
			}

			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: line.Quantity,
					Available: product.Stock,
				}
			}

			err = tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to deduct stock for product %d: %w", product.ID, err)
			}

			item := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				Quantity:    line.Quantity,
				PriceAtTime: product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			total += product.Price * float64(line.Quantity)
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_amount", total).Error
	})
	if err != nil {
		return nil, err
	}

	// Re-read with items eagerly attached so the response is never
	// partially initialized.
	return r.GetByID(order.ID)
}

// GetAll returns a page of orders, newest first, with items attached.
func (r *GORMOrderRepository) GetAll(userID *uint, offset, limit int) ([]models.Order, error) {
	query := r.db.Preload("Items").Order("id DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	var orders []models.Order
	if err := query.Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetByID returns an order with its items attached.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}
