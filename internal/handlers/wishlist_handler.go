package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"maison/internal/middleware"
	"maison/internal/repositories"
	"maison/internal/services"
)

// WishlistHandler handles HTTP requests for the caller's wishlist.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes, all authenticated.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	wishlist := router.Group("/wishlist", auth)
	wishlist.Get("/", h.HandleList)
	wishlist.Post("/", h.HandleAdd)
	wishlist.Delete("/:product_id", h.HandleRemove)
}

// HandleList returns the caller's wishlist.
func (h *WishlistHandler) HandleList(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	entries, err := h.service.List(caller.ID)
	if err != nil {
		log.Printf("failed to list wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
		})
	}
	return c.JSON(entries)
}

// WishlistAddRequest names the product to save.
type WishlistAddRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// HandleAdd saves a product on the caller's wishlist.
func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	var req WishlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	caller := middleware.CurrentUser(c)
	entry, err := h.service.Add(caller.ID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Product already in wishlist",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			log.Printf("failed to add to wishlist: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not add to wishlist",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleRemove takes a product off the caller's wishlist.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	caller := middleware.CurrentUser(c)
	if err := h.service.Remove(caller.ID, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found in wishlist",
			})
		}
		log.Printf("failed to remove from wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from wishlist",
		})
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
