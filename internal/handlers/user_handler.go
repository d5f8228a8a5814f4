package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"maison/internal/middleware"
	"maison/internal/models"
	"maison/internal/repositories"
	"maison/internal/services"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user management routes. Creation,
// listing, deletion and password setting are super-admin only;
// editing allows a user to change their own record.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth, superOnly fiber.Handler) {
	users := router.Group("/users", auth)
	users.Get("/me", h.HandleMe)
	users.Post("/", superOnly, h.HandleCreate)
	users.Get("/", superOnly, h.HandleList)
	users.Put("/:id", h.HandleUpdate)
	users.Put("/:id/password", superOnly, h.HandleSetPassword)
	users.Delete("/:id", superOnly, h.HandleDelete)
}

// HandleMe returns the authenticated caller's record.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// UserCreateRequest is the payload for creating an account.
type UserCreateRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=100"`
	Password     string `json:"password" validate:"required,min=6"`
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	IsAdmin      bool   `json:"is_admin"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// HandleCreate creates a new account.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		IsAdmin:      req.IsAdmin,
		IsSuperAdmin: req.IsSuperAdmin,
	}
	if err := h.userService.Create(user, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Username already registered",
			})
		}
		log.Printf("failed to create user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create user",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleList returns every account.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		log.Printf("failed to list users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleUpdate edits a user record. Allowed for the super admin, or
// for a user editing their own record.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	caller := middleware.CurrentUser(c)
	if !caller.IsSuperAdmin && caller.ID != id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to edit this user",
		})
	}

	var update services.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return badBody(c, err)
	}
	// Only the super admin may change role flags.
	if !caller.IsSuperAdmin {
		update.IsAdmin = nil
		update.IsSuperAdmin = nil
		update.IsActive = nil
	}

	user, err := h.userService.Update(id, update)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username already registered"})
		default:
			log.Printf("failed to update user %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not update user",
			})
		}
	}
	return c.JSON(user)
}

// SetPasswordRequest is the payload for the super-admin password set.
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// HandleSetPassword replaces any user's password.
func (h *UserHandler) HandleSetPassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.SetPassword(id, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		log.Printf("failed to set password for user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not set password",
		})
	}
	return c.JSON(user)
}

// HandleDelete removes a user. Self-deletion is refused.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	caller := middleware.CurrentUser(c)
	if err := h.userService.Delete(id, caller.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot delete yourself"})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		default:
			log.Printf("failed to delete user %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete user",
			})
		}
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
