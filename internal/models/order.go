package models

import "time"

// OrderLine is a requested (product, quantity) pair inside an order
// placement request.
type OrderLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// Order is a completed sale. UserID is nil for anonymous checkouts.
type Order struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status" gorm:"default:completed"` // completed, refunded
	UserID      *uint   `json:"user_id"`

	PaymentMethod     string `json:"payment_method" gorm:"default:cod"`
	CustomerEmail     string `json:"customer_email"`
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerAddress   string `json:"customer_address"`
	CustomerCity      string `json:"customer_city"`
	CustomerCountry   string `json:"customer_country"`
	CustomerZip       string `json:"customer_zip"`

	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is a single line of an order. PriceAtTime snapshots the
// product price at purchase so later price edits never alter
// historical totals.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	Quantity    int     `json:"quantity"`
	PriceAtTime float64 `json:"price_at_time"`
}
