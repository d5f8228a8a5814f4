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

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. Placement works for
// anonymous callers; listing requires authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, optionalAuth, auth fiber.Handler) {
	orders := router.Group("/orders")
	orders.Post("/", optionalAuth, h.HandleCreate)
	orders.Get("/", auth, h.HandleList)
}

// HandleCreate places an order. A valid bearer token attributes the
// order to the caller; a missing or invalid token yields an anonymous
// order, never an error.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req services.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var userID *uint
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.ID
	}

	order, err := h.service.Place(userID, req)
	if err != nil {
		var notFound *repositories.ProductNotFoundError
		var noStock *repositories.InsufficientStockError
		switch {
		case errors.As(err, &notFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": notFound.Error(),
			})
		case errors.As(err, &noStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": noStock.Error(),
			})
		default:
			log.Printf("failed to create order: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create order",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleList returns the caller's orders, or every order for admins.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	offset, limit := pageParams(c)
	caller := middleware.CurrentUser(c)

	orders, err := h.service.List(caller, offset, limit)
	if err != nil {
		log.Printf("failed to list orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}
