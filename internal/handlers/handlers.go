package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/remote"
)

// remoteErrorResponse maps a failed remote call to a JSON response. The
// remote API's status and message pass through; transport-level failures
// become a 502.
func remoteErrorResponse(c *fiber.Ctx, err error) error {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{
			"message": apiErr.Message,
		})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// validationErrorResponse renders validator failures field by field.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
