package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"maison/internal/models"
	"maison/internal/services"
)

// SettingsHandler handles HTTP requests for the key/value site
// configuration store.
type SettingsHandler struct {
	service  *services.SettingsService
	validate *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the settings routes. Reading is public;
// writing is a super-admin privilege.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router, auth, superOnly fiber.Handler) {
	settings := router.Group("/settings")
	settings.Get("/", h.HandleList)
	settings.Put("/", auth, superOnly, h.HandleUpdate)
}

// HandleList returns every setting.
func (h *SettingsHandler) HandleList(c *fiber.Ctx) error {
	settings, err := h.service.List()
	if err != nil {
		log.Printf("failed to list settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve settings",
		})
	}
	return c.JSON(settings)
}

// HandleUpdate upserts the posted settings and returns the full store.
func (h *SettingsHandler) HandleUpdate(c *fiber.Ctx) error {
	var settings []models.SiteSetting
	if err := c.BodyParser(&settings); err != nil {
		return badBody(c, err)
	}
	for _, setting := range settings {
		if err := h.validate.Struct(setting); err != nil {
			return validationFailed(c, err)
		}
	}

	updated, err := h.service.Update(settings)
	if err != nil {
		log.Printf("failed to update settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update settings",
		})
	}
	return c.JSON(updated)
}
