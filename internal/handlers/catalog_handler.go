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

// CatalogHandler handles HTTP requests for categories, brands and
// store locations.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the reference entity routes. Reads are
// public; writes require an admin.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router, auth, adminOnly fiber.Handler) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", auth, adminOnly, h.HandleCreateCategory)
	categories.Delete("/:id", auth, adminOnly, h.HandleDeleteCategory)

	brands := router.Group("/brands")
	brands.Get("/", h.HandleListBrands)
	brands.Post("/", auth, adminOnly, h.HandleCreateBrand)
	brands.Delete("/:id", auth, adminOnly, h.HandleDeleteBrand)

	stores := router.Group("/stores")
	stores.Get("/", h.HandleListStores)
	stores.Post("/", auth, adminOnly, h.HandleCreateStore)
	stores.Delete("/:id", auth, adminOnly, h.HandleDeleteStore)
}

// HandleListCategories retrieves a page of categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	offset, limit := pageParams(c)
	categories, err := h.service.ListCategories(offset, limit)
	if err != nil {
		log.Printf("failed to list categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(categories)
}

// HandleCreateCategory creates a category, unique by name.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badBody(c, err)
	}
	category.ID = 0
	if err := h.validate.Struct(category); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateCategory(&category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Category already exists",
			})
		}
		log.Printf("failed to create category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDeleteCategory removes a category.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.DeleteCategory(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
		}
		log.Printf("failed to delete category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
		})
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// HandleListBrands retrieves all brands.
func (h *CatalogHandler) HandleListBrands(c *fiber.Ctx) error {
	brands, err := h.service.ListBrands()
	if err != nil {
		log.Printf("failed to list brands: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve brands",
		})
	}
	return c.JSON(brands)
}

// HandleCreateBrand creates a brand, unique by name.
func (h *CatalogHandler) HandleCreateBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return badBody(c, err)
	}
	brand.ID = 0
	if err := h.validate.Struct(brand); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateBrand(&brand); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Brand already exists",
			})
		}
		log.Printf("failed to create brand: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create brand",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

// HandleDeleteBrand removes a brand.
func (h *CatalogHandler) HandleDeleteBrand(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.DeleteBrand(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Brand not found"})
		}
		log.Printf("failed to delete brand %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete brand",
		})
	}
	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}

// HandleListStores retrieves all store locations.
func (h *CatalogHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.service.ListStores()
	if err != nil {
		log.Printf("failed to list stores: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stores",
		})
	}
	return c.JSON(stores)
}

// HandleCreateStore creates a store location.
func (h *CatalogHandler) HandleCreateStore(c *fiber.Ctx) error {
	var store models.StoreLocation
	if err := c.BodyParser(&store); err != nil {
		return badBody(c, err)
	}
	store.ID = 0
	if err := h.validate.Struct(store); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateStore(&store); err != nil {
		log.Printf("failed to create store: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create store",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// HandleDeleteStore removes a store location.
func (h *CatalogHandler) HandleDeleteStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.DeleteStore(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Store not found"})
		}
		log.Printf("failed to delete store %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete store",
		})
	}
	return c.JSON(fiber.Map{"message": "Store deleted successfully"})
}
