package services

import (
	"maison/internal/models"
	"maison/internal/repositories"
)

// WishlistService handles the caller-scoped wishlist.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// List returns the user's wishlist with products attached.
func (s *WishlistService) List(userID uint) ([]models.Wishlist, error) {
	return s.wishlistRepo.GetByUser(userID)
}

// Add saves a product on the user's wishlist. The product must exist
// and the (user, product) pair must be new.
func (s *WishlistService) Add(userID, productID uint) (*models.Wishlist, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	entry := &models.Wishlist{UserID: userID, ProductID: productID}
	if err := s.wishlistRepo.Add(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove takes a product off the user's wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.Remove(userID, productID)
}
