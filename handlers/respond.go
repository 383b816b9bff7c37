package handlers

import (
	"errors"
	"log"

	"esports-tournament-system/apperrors"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a typed engine failure onto its HTTP status; anything
// untyped is a 500 with the detail kept server-side.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"message": appErr.Message,
		})
	}
	log.Printf("ERROR %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
