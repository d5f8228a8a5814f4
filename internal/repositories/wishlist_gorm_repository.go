package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"maison/internal/models"
)

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetByUser(userID uint) ([]models.Wishlist, error)
	// Add saves the (user, product) pair; the pair is unique per user.
	Add(entry *models.Wishlist) error
	Remove(userID, productID uint) error
}

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{db: db}
}

// GetByUser returns the user's wishlist with products attached.
func (r *GORMWishlistRepository) GetByUser(userID uint) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	err := r.db.Preload("Product").Where("user_id = ?", userID).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return entries, nil
}

// Add saves a wishlist entry and reloads it with the product attached.
func (r *GORMWishlistRepository) Add(entry *models.Wishlist) error {
	if err := r.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("product %d already in wishlist: %w", entry.ProductID, ErrDuplicate)
		}
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return r.db.Preload("Product").First(entry, "id = ?", entry.ID).Error
}

// Remove deletes the (user, product) pair.
func (r *GORMWishlistRepository) Remove(userID, productID uint) error {
	res := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist item %d: %w", productID, ErrNotFound)
	}
	return nil
}
