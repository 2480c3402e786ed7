package middleware

import (
	"errors"

	"course-service/services"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the standard {status, message, data} envelope
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}

// ErrorResponse maps a service error onto its HTTP status. Unknown errors are
// logged and answered with a generic 500 message.
func ErrorResponse(c *fiber.Ctx, logger services.Logger, fallback string, err error) error {
	var se *services.Error
	if errors.As(err, &se) {
		if se.Fields != nil {
			return ValidationErrorResponse(c, se.Fields)
		}
		return JsonResponse(c, statusFor(se.Kind), false, se.Message, nil)
	}

	logger.Errorf("[HTTP] %s %s (request %v): %v", c.Method(), c.Path(), c.Locals("requestid"), err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(kind, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(kind, services.ErrBadRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// NotFoundHandler answers unmatched routes with the standard envelope
func NotFoundHandler(c *fiber.Ctx) error {
	return JsonResponse(c, fiber.StatusNotFound, false, "Route not found!", nil)
}

// ErrorHandler is the fiber.Config.ErrorHandler. It keeps the envelope for
// errors raised by fiber itself, such as oversized bodies or recovered panics.
func ErrorHandler(logger services.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return JsonResponse(c, fe.Code, false, fe.Message, nil)
		}
		logger.Errorf("[HTTP] Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
	}
}
