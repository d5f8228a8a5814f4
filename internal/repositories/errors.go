package repositories

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all repositories. Handlers map these to
// HTTP statuses with errors.Is / errors.As.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrProductInUse = errors.New("product is referenced by existing orders")
)

// ProductNotFoundError names the missing product during order placement.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientStockError reports an order line asking for more units
// than the product currently has.
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s (requested %d, available %d)", e.Name, e.Requested, e.Available)
}
