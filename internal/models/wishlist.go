package models

import "time"

// Wishlist is a saved (user, product) pair, unique per user.
type Wishlist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_product"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_wishlist_user_product"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty"`
}

// SiteSetting is one key/value entry of the site configuration store.
type SiteSetting struct {
	Key   string `json:"key" gorm:"primaryKey;type:varchar(100)" validate:"required"`
	Value string `json:"value"`
}
