package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/domain"
)

// respondError maps domain error kinds to HTTP statuses. Conflicts and
// shortfalls are client errors (400) carrying the specific message.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusBadRequest, "CONFLICT"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusBadRequest, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Msg("request failed")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body", Code: "INVALID_BODY"})
}
