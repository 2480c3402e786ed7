package categoryController

import (
	"course-service/middleware"
	"course-service/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryController struct {
	svc *services.CategoryService
	log services.Logger
}

func NewCategoryController(svc *services.CategoryService, logger services.Logger) *CategoryController {
	return &CategoryController{svc: svc, log: logger}
}

func (h *CategoryController) CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*services.CreateCategoryInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category, err := h.svc.Create(c.UserContext(), *reqData)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to create category!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func (h *CategoryController) GetAllCategories(c *fiber.Ctx) error {
	includeInactive, _ := c.Locals("includeInactive").(bool)

	categories, err := h.svc.List(c.UserContext(), includeInactive)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to fetch categories!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetCategoryDetails returns the category with its courses
func (h *CategoryController) GetCategoryDetails(c *fiber.Ctx) error {
	categoryID, _ := c.Locals("categoryId").(string)

	category, err := h.svc.Get(c.UserContext(), categoryID)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to fetch category!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category fetched successfully!", category)
}

func (h *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, _ := c.Locals("categoryId").(string)
	reqData, ok := c.Locals("validatedCategoryPatch").(*services.CategoryPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category, err := h.svc.Update(c.UserContext(), categoryID, *reqData)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to update category!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

func (h *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, _ := c.Locals("categoryId").(string)

	if err := h.svc.Delete(c.UserContext(), categoryID); err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to delete category!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

func (h *CategoryController) DeactivateCategory(c *fiber.Ctx) error {
	categoryID, _ := c.Locals("categoryId").(string)

	category, err := h.svc.Deactivate(c.UserContext(), categoryID)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to deactivate category!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deactivated successfully!", category)
}
