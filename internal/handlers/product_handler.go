package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"maison/internal/models"
	"maison/internal/repositories"
	"maison/internal/services"
)

// ProductHandler handles HTTP requests for products and the enriched
// catalog listing.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers product and catalog routes. Reads are
// public; writes require an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth, adminOnly fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)
	products.Post("/", auth, adminOnly, h.HandleCreate)
	products.Put("/:id", auth, adminOnly, h.HandleUpdate)
	products.Delete("/:id", auth, adminOnly, h.HandleDelete)

	catalog := router.Group("/catalog")
	catalog.Get("/", h.HandleCatalog)
	catalog.Get("/:id", h.HandleCatalogGet)
}

func pageParams(c *fiber.Ctx) (offset, limit int) {
	offset = c.QueryInt("skip", 0)
	limit = c.QueryInt("limit", 100)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return offset, limit
}

// HandleList retrieves a page of products.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	offset, limit := pageParams(c)
	products, err := h.service.List(offset, limit)
	if err != nil {
		log.Printf("failed to list products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGet retrieves a single product with its category attached.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	product, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		log.Printf("failed to get product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// HandleCreate stores a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badBody(c, err)
	}
	product.ID = 0
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	created, err := h.service.Create(&product)
	if err != nil {
		log.Printf("failed to create product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ProductUpdateRequest carries partial product changes. Nil means
// "leave as is".
type ProductUpdateRequest struct {
	Name             *string            `json:"name"`
	Description      *string            `json:"description"`
	Price            *float64           `json:"price" validate:"omitempty,gt=0"`
	Stock            *int               `json:"stock" validate:"omitempty,gte=0"`
	ImageURL         *string            `json:"image_url"`
	AdditionalImages *models.StringList `json:"additional_images"`
	Specs            *models.SpecMap    `json:"specs"`
	Rating           *float64           `json:"rating"`
	ReviewCount      *int               `json:"review_count"`
	CategoryID       *uint              `json:"category_id"`
	BrandID          *uint              `json:"brand_id"`
}

// HandleUpdate applies partial changes to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		log.Printf("failed to get product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.AdditionalImages != nil {
		product.AdditionalImages = *req.AdditionalImages
	}
	if req.Specs != nil {
		product.Specs = *req.Specs
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.ReviewCount != nil {
		product.ReviewCount = *req.ReviewCount
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}

	updated, err := h.service.Update(product)
	if err != nil {
		log.Printf("failed to update product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}
	return c.JSON(updated)
}

// HandleDelete removes a product unless existing orders reference it.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Delete(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductInUse):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot delete product because it is part of existing orders. Consider hiding it (setting stock to 0) instead.",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			log.Printf("failed to delete product %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete product",
			})
		}
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleCatalog lists products enriched with brand and category.
func (h *ProductHandler) HandleCatalog(c *fiber.Ctx) error {
	offset, limit := pageParams(c)
	products, err := h.service.Catalog(offset, limit)
	if err != nil {
		log.Printf("failed to list catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve catalog",
		})
	}
	return c.JSON(products)
}

// HandleCatalogGet retrieves one product enriched with brand and category.
func (h *ProductHandler) HandleCatalogGet(c *fiber.Ctx) error {
	return h.HandleGet(c)
}
