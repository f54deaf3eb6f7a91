package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pool-league-system/engine"
)

// respondErr maps engine and store errors onto HTTP statuses so clients can
// branch on kind: bad input 400, state conflict 409 (re-fetch and retry),
// missing entity 404, anything else 500.
func respondErr(c *fiber.Ctx, err error) error {
	switch {
	case engine.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case engine.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
}
