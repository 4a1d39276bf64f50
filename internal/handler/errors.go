package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/logger"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrExerciseNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotEditable):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrSetTypeNotAllowed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDefinition),
		errors.Is(err, domain.ErrInvalidSimilarity),
		errors.Is(err, domain.ErrInvalidRelationType),
		errors.Is(err, domain.ErrSelfRelation),
		errors.Is(err, domain.ErrInvalidSet):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every handler error as {"error": message}. Only
// server-side failures are logged at error level.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		} else {
			log.Debug("request rejected", "method", c.Method(), "path", c.Path(), "status", code, "error", err)
		}
		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
