package services

import (
	"context"
	"time"

	"course-service/models"
)

// CategoryRepository is the persistence contract for categories.
// Lookups that miss return gorm.ErrRecordNotFound; a name collision on write
// returns gorm.ErrDuplicatedKey.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id string, withCourses bool) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) (int64, error)
}

// CourseRepository is the persistence contract for courses.
// ApplyRating and IncrementEnrollment must be atomic in the store.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindMany(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error)
	FindByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	Save(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) (int64, error)

	ApplyRating(ctx context.Context, id string, value float64) (*models.Course, error)
	IncrementEnrollment(ctx context.Context, id string) (*models.Course, error)

	CountByStatus(ctx context.Context) (map[models.CourseStatus]int64, error)
	Totals(ctx context.Context) (CourseTotals, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	RepairPublishedFlags(ctx context.Context) (int64, error)
	FindOrphanedCategoryIDs(ctx context.Context) ([]string, error)
}

// CourseTotals are the catalog-wide sums behind the stats view
type CourseTotals struct {
	Enrolled  int64
	RatingSum float64
	Ratings   int64
}
