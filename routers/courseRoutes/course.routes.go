package courseRoutes

import (
	controllers "course-service/controllers/course"
	validators "course-service/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes under router
func SetupCourseRoutes(router fiber.Router, ctrl *controllers.CourseController, defaultLimit int) {
	courseGroup := router.Group("/courses")

	courseGroup.Post("/", validators.CreateCourse(), ctrl.CreateCourse)
	courseGroup.Get("/", validators.CourseList(defaultLimit), ctrl.GetAllCourses)

	// Static segments before /:id
	courseGroup.Get("/stats", ctrl.CatalogStats)
	courseGroup.Get("/instructor/:instructorId", validators.InstructorID(), ctrl.GetInstructorCourses)

	courseGroup.Get("/:id", validators.CourseID(), ctrl.GetCourseDetails)
	courseGroup.Patch("/:id", validators.UpdateCourse(), ctrl.UpdateCourse)
	courseGroup.Delete("/:id", validators.CourseID(), ctrl.DeleteCourse)

	// Aggregates
	courseGroup.Patch("/:id/rating", validators.RateCourse(), ctrl.RateCourse)
	courseGroup.Patch("/:id/enroll", validators.CourseID(), ctrl.EnrollInCourse)
}
