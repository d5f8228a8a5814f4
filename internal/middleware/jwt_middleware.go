package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"maison/internal/models"
	"maison/internal/services"
)

const currentUserKey = "currentUser"

// CurrentUser returns the authenticated user stored by AuthRequired
// or OptionalAuth, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired rejects requests without a valid bearer token and
// stores the resolved user in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}
		user, err := authService.UserFromToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// OptionalAuth resolves the caller when a valid bearer token is
// present, and lets the request through anonymously otherwise. Used
// by order placement, where a bad token means an unattributed order,
// not an error.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if user, err := authService.UserFromToken(token); err == nil {
				c.Locals(currentUserKey, user)
			}
		}
		return c.Next()
	}
}

// AdminOnly allows admins and super admins. Must run after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.CanManageCatalog() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin privileges required",
			})
		}
		return c.Next()
	}
}

// SuperAdminOnly allows only super admins. Must run after AuthRequired.
func SuperAdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Super admin privileges required",
			})
		}
		return c.Next()
	}
}
