package middleware

import (
	"strings"

	"esports-tournament-system/models"
	"esports-tournament-system/utils"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Protected resolves the Bearer token into a Principal and attaches it to
// the request context. Requests without a valid token are rejected.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "missing or malformed authorization header",
			})
		}

		principal, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "invalid or expired token",
			})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireRoles gates a route group to the given roles. Must run after
// Protected.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "access denied",
		})
	}
}

// GetPrincipal returns the Principal attached by Protected; zero value
// when absent.
func GetPrincipal(c *fiber.Ctx) models.Principal {
	principal, _ := c.Locals(principalKey).(models.Principal)
	return principal
}
