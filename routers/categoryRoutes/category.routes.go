package categoryRoutes

import (
	controllers "course-service/controllers/category"
	validators "course-service/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up all category routes under router
func SetupCategoryRoutes(router fiber.Router, ctrl *controllers.CategoryController) {
	categoryGroup := router.Group("/categories")

	categoryGroup.Post("/", validators.CreateCategory(), ctrl.CreateCategory)
	categoryGroup.Get("/", validators.ListCategories(), ctrl.GetAllCategories)
	categoryGroup.Get("/:id", validators.CategoryID(), ctrl.GetCategoryDetails)
	categoryGroup.Patch("/:id", validators.UpdateCategory(), ctrl.UpdateCategory)
	categoryGroup.Delete("/:id", validators.CategoryID(), ctrl.DeleteCategory)
	categoryGroup.Patch("/:id/deactivate", validators.CategoryID(), ctrl.DeactivateCategory)
}
