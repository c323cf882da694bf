package response

import (
	"errors"
	"log"

	apperr "fluidit/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func ValidationError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Domain maps a service error onto its HTTP status. Domain errors carry
// their own status and a safe message; anything else is logged and returned
// as a generic 500 so internals never leak to clients.
func Domain(c *fiber.Ctx, err error) error {
	var domainErr *apperr.DomainError
	if errors.As(err, &domainErr) {
		return Error(c, domainErr.Status, domainErr.Message)
	}
	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	return ServerError(c, "something went wrong")
}
