package controllers

import (
	"course-service/middleware"
	"course-service/services"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	svc *services.CourseService
	log services.Logger
}

func NewCourseController(svc *services.CourseService, logger services.Logger) *CourseController {
	return &CourseController{svc: svc, log: logger}
}

func (h *CourseController) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*services.CreateCourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := h.svc.Create(c.UserContext(), *reqData)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to create course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (h *CourseController) GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*services.CourseQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page, err := h.svc.List(c.UserContext(), *reqData)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to fetch courses!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", page)
}

func (h *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseId").(string)

	course, err := h.svc.Get(c.UserContext(), courseID)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to fetch course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func (h *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseId").(string)
	reqData, ok := c.Locals("validatedCoursePatch").(*services.CoursePatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := h.svc.Update(c.UserContext(), courseID, *reqData)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to update course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func (h *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseId").(string)

	if err := h.svc.Delete(c.UserContext(), courseID); err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to delete course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func (h *CourseController) RateCourse(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseId").(string)
	rating, _ := c.Locals("rating").(float64)

	course, err := h.svc.UpdateRating(c.UserContext(), courseID, rating)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to rate course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course rated successfully!", course)
}

func (h *CourseController) EnrollInCourse(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseId").(string)

	course, err := h.svc.IncrementEnrollment(c.UserContext(), courseID)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to enroll in course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment recorded successfully!", course)
}

func (h *CourseController) GetInstructorCourses(c *fiber.Ctx) error {
	instructorID, _ := c.Locals("instructorId").(string)

	courses, err := h.svc.ListByInstructor(c.UserContext(), instructorID)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to fetch instructor courses!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor courses fetched successfully!", courses)
}

// CatalogStats is the dashboard summary of the whole catalog
func (h *CourseController) CatalogStats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, h.log, "Failed to fetch catalog stats!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Catalog stats fetched successfully!", stats)
}
