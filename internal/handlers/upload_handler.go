package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"maison/pkg/storage"
)

// UploadHandler handles multipart file uploads.
type UploadHandler struct {
	uploader storage.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterRoutes registers the upload route, admin only.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, auth, adminOnly fiber.Handler) {
	router.Post("/upload", auth, adminOnly, h.HandleUpload)
}

// HandleUpload stores the "file" form part and returns its public URL.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'file' form field is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("failed to open uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read uploaded file",
		})
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Context(), file, fileHeader.Filename)
	if err != nil {
		log.Printf("failed to store uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store uploaded file",
		})
	}
	return c.JSON(fiber.Map{"url": url})
}
