package services

import (
	"strings"

	"course-service/models"
)

// CourseQuery is the caller-facing listing request. Page and Limit are used
// as given.
type CourseQuery struct {
	Page       int
	Limit      int
	CategoryID string
	Status     string
	Search     string
	SortBy     string
	SortOrder  string
}

// CourseFilter is a resolved CourseQuery ready for the repository
type CourseFilter struct {
	CategoryID string
	Status     string
	Search     string
	SortColumn string
	Descending bool
	Offset     int
	Limit      int
}

// CoursePage is the pagination envelope returned by listings
type CoursePage struct {
	Data  []models.Course `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// sortable course fields, keyed by their json name
var courseSortColumns = map[string]string{
	"title":            "title",
	"price":            "price",
	"rating":           "rating",
	"totalRatings":     "total_ratings",
	"studentsEnrolled": "students_enrolled",
	"totalLessons":     "total_lessons",
	"totalDuration":    "total_duration",
	"instructorName":   "instructor_name",
	"status":           "status",
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
}

func buildCourseFilter(q CourseQuery) (CourseFilter, error) {
	f := CourseFilter{
		CategoryID: q.CategoryID,
		Status:     q.Status,
		Search:     q.Search,
		Descending: true,
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
	}

	switch strings.ToUpper(strings.TrimSpace(q.SortOrder)) {
	case "", "DESC":
	case "ASC":
		f.Descending = false
	default:
		return f, badRequest("sortOrder must be ASC or DESC")
	}

	if q.SortBy != "" {
		col, ok := courseSortColumns[q.SortBy]
		if !ok {
			return f, badRequest("Cannot sort courses by %q", q.SortBy)
		}
		f.SortColumn = col
	}
	return f, nil
}
