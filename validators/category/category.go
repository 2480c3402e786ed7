package categoryValidator

import (
	"strconv"
	"strings"

	"course-service/middleware"
	"course-service/services"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory validates category creation request
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.CreateCategoryInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(reqData.Name) > 255 {
			errors["name"] = "Name must be at most 255 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// UpdateCategory validates category update request
func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, ok := middleware.UUIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Category ID!", nil)
		}

		reqData := new(services.CategoryPatch)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil {
			name := strings.TrimSpace(*reqData.Name)
			if name == "" {
				errors["name"] = "Name cannot be empty!"
			}
			reqData.Name = &name
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("categoryId", categoryID)
		c.Locals("validatedCategoryPatch", reqData)
		return c.Next()
	}
}

// CategoryID validates the :id path param
func CategoryID() fiber.Handler {
	return middleware.RequireUUIDParam("id", "categoryId", "Category")
}

// ListCategories validates the includeInactive flag
func ListCategories() fiber.Handler {
	return func(c *fiber.Ctx) error {
		includeInactive := false
		if raw := strings.TrimSpace(c.Query("includeInactive")); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"includeInactive": "includeInactive must be true or false!",
				})
			}
			includeInactive = v
		}

		c.Locals("includeInactive", includeInactive)
		return c.Next()
	}
}
