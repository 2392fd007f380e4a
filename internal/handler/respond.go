package handler

import (
	"go-stockledger/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps error kinds to HTTP statuses. This is the only
// place kinds turn into transport codes; handlers that need a
// different code for one route override locally.
func statusFromError(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.ProductMismatch, apperr.InsufficientStock, apperr.Constraint:
		return fiber.StatusBadRequest
	case apperr.Conflict:
		return fiber.StatusConflict
	case apperr.NotFound:
		return fiber.StatusNotFound
	case apperr.Connectivity:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{"error": err.Error()})
}
