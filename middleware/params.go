package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UUIDParam returns the named path param if it is a well-formed UUID
func UUIDParam(c *fiber.Ctx, name string) (string, bool) {
	raw := strings.TrimSpace(c.Params(name))
	if err := uuid.Validate(raw); err != nil {
		return "", false
	}
	return raw, true
}

// RequireUUIDParam rejects requests whose path param is not a UUID and stores
// the id under localKey for the controller.
func RequireUUIDParam(name, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := UUIDParam(c, name)
		if !ok {
			return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}
		c.Locals(localKey, id)
		return c.Next()
	}
}
