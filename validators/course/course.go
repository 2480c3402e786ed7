package courseValidator

import (
	"math"
	"strconv"
	"strings"

	"course-service/middleware"
	"course-service/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ============ Course Validators ============

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.CreateCourseInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.InstructorID = strings.TrimSpace(reqData.InstructorID)
		reqData.InstructorName = strings.TrimSpace(reqData.InstructorName)
		reqData.CategoryID = strings.TrimSpace(reqData.CategoryID)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.InstructorID == "" {
			errors["instructorId"] = "Instructor ID is required!"
		}
		if reqData.InstructorName == "" {
			errors["instructorName"] = "Instructor name is required!"
		}
		if reqData.CategoryID == "" {
			errors["categoryId"] = "Category ID is required!"
		} else if uuid.Validate(reqData.CategoryID) != nil {
			errors["categoryId"] = "Category ID must be a valid UUID!"
		}
		if reqData.Price < 0 || math.IsNaN(reqData.Price) {
			errors["price"] = "Price must be a non-negative number!"
		}
		if reqData.Status != "" && !reqData.Status.Valid() {
			errors["status"] = "Status must be draft, published, or archived!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := middleware.UUIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(services.CoursePatch)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.CategoryID != nil && uuid.Validate(*reqData.CategoryID) != nil {
			errors["categoryId"] = "Category ID must be a valid UUID!"
		}
		if reqData.Price != nil && (*reqData.Price < 0 || math.IsNaN(*reqData.Price)) {
			errors["price"] = "Price must be a non-negative number!"
		}
		if reqData.Status != nil && !reqData.Status.Valid() {
			errors["status"] = "Status must be draft, published, or archived!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseId", courseID)
		c.Locals("validatedCoursePatch", reqData)
		return c.Next()
	}
}

// CourseID validates the :id path param
func CourseID() fiber.Handler {
	return middleware.RequireUUIDParam("id", "courseId", "Course")
}

// InstructorID validates the :instructorId path param
func InstructorID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		instructorID := strings.TrimSpace(c.Params("instructorId"))
		if instructorID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Instructor ID is required!", nil)
		}
		c.Locals("instructorId", instructorID)
		return c.Next()
	}
}

// CourseList validates listing query params. page and limit default to 1 and
// defaultLimit but are otherwise passed through unchanged.
func CourseList(defaultLimit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			errors["page"] = "Page must be an integer!"
		}
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
		if err != nil {
			errors["limit"] = "Limit must be an integer!"
		}

		sortOrder := strings.ToUpper(strings.TrimSpace(c.Query("sortOrder")))
		if sortOrder != "" && sortOrder != "ASC" && sortOrder != "DESC" {
			errors["sortOrder"] = "Sort order must be ASC or DESC!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", &services.CourseQuery{
			Page:       page,
			Limit:      limit,
			CategoryID: strings.TrimSpace(c.Query("categoryId")),
			Status:     strings.TrimSpace(c.Query("status")),
			Search:     strings.TrimSpace(c.Query("search")),
			SortBy:     strings.TrimSpace(c.Query("sortBy")),
			SortOrder:  sortOrder,
		})
		return c.Next()
	}
}

// RateCourse validates the rating, taken from the query string or a JSON body
func RateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := middleware.UUIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		var rating *float64
		if raw := strings.TrimSpace(c.Query("rating")); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{"rating": "Rating must be a number!"})
			}
			rating = &v
		} else if len(c.Body()) > 0 {
			reqData := new(struct {
				Rating *float64 `json:"rating"`
			})
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
			rating = reqData.Rating
		}

		if rating == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"rating": "Rating is required!"})
		}

		c.Locals("courseId", courseID)
		c.Locals("rating", *rating)
		return c.Next()
	}
}
