package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"course-service/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// CourseService owns course records, the listing contract and the
// rating/enrollment aggregates.
type CourseService struct {
	repo       CourseRepository
	categories *CategoryService
	log        Logger
	now        func() time.Time
}

func NewCourseService(repo CourseRepository, categories *CategoryService, logger Logger) *CourseService {
	return &CourseService{repo: repo, categories: categories, log: logger, now: time.Now}
}

// CatalogStats is the dashboard view of the catalog
type CatalogStats struct {
	TotalCourses     int64                         `json:"totalCourses"`
	ByStatus         map[models.CourseStatus]int64 `json:"byStatus"`
	TotalEnrollments int64                         `json:"totalEnrollments"`
	TotalRatings     int64                         `json:"totalRatings"`
	AverageRating    float64                       `json:"averageRating"`
	CreatedToday     int64                         `json:"createdToday"`
	CreatedThisMonth int64                         `json:"createdThisMonth"`
}

func (s *CourseService) Create(ctx context.Context, in CreateCourseInput) (*models.Course, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.categories.Require(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.CourseStatusDraft
	}

	course := &models.Course{
		Title:           in.Title,
		Description:     in.Description,
		Price:           in.Price,
		InstructorID:    in.InstructorID,
		InstructorName:  in.InstructorName,
		CategoryID:      in.CategoryID,
		ThumbnailURL:    in.ThumbnailURL,
		PreviewVideoURL: in.PreviewVideoURL,
		Tags:            normalizeTags(in.Tags),
		Status:          status,
		TotalLessons:    in.TotalLessons,
		TotalDuration:   in.TotalDuration,
	}
	course.SyncPublished()
	course.SyncSearchTitle()

	if err := s.repo.Create(ctx, course); err != nil {
		s.log.Errorf("[COURSE] Error creating course: %v", err)
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.log.Infof("[COURSE] Course created: %s", course.ID)
	return course, nil
}

// List filters, sorts and paginates courses. Total counts every matching row.
func (s *CourseService) List(ctx context.Context, q CourseQuery) (*CoursePage, error) {
	filter, err := buildCourseFilter(q)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.repo.FindMany(ctx, filter)
	if err != nil {
		s.log.Errorf("[COURSE] Error fetching courses: %v", err)
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if rows == nil {
		rows = []models.Course{}
	}

	return &CoursePage{Data: rows, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// Get loads a course together with its category
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id string, patch CoursePatch) (*models.Course, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, validationError(err)
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var category *models.Category
	if patch.CategoryID != nil {
		if category, err = s.categories.Require(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	mergeCoursePatch(course, patch)
	if category != nil {
		course.Category = category
	}
	if err := s.repo.Save(ctx, course); err != nil {
		s.log.Errorf("[COURSE] Error updating course %s: %v", id, err)
		return nil, fmt.Errorf("update course %s: %w", id, err)
	}

	s.log.Infof("[COURSE] Course updated: %s", course.ID)
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Errorf("[COURSE] Error deleting course %s: %v", id, err)
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	if affected == 0 {
		return notFound("Course with ID %s not found", id)
	}
	s.log.Infof("[COURSE] Course deleted: %s", id)
	return nil
}

// UpdateRating folds value into the course's running mean. The fold runs as a
// single statement in the store so concurrent submissions are not lost.
func (s *CourseService) UpdateRating(ctx context.Context, id string, value float64) (*models.Course, error) {
	if math.IsNaN(value) || value < 0 || value > 5 {
		return nil, badRequest("Rating must be between 0 and 5")
	}

	course, err := s.repo.ApplyRating(ctx, id, value)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	s.log.Infof("[COURSE] Course rating updated: %s", course.ID)
	return course, nil
}

func (s *CourseService) IncrementEnrollment(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.IncrementEnrollment(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	s.log.Infof("[COURSE] Course enrollment incremented: %s", course.ID)
	return course, nil
}

// ListByInstructor returns the instructor's courses, newest first
func (s *CourseService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	courses, err := s.repo.FindByInstructor(ctx, instructorID)
	if err != nil {
		s.log.Errorf("[COURSE] Error fetching instructor courses: %v", err)
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func (s *CourseService) Stats(ctx context.Context) (*CatalogStats, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses by status: %w", err)
	}
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("course totals: %w", err)
	}

	clock := now.With(s.now())
	today, err := s.repo.CountCreatedSince(ctx, clock.BeginningOfDay())
	if err != nil {
		return nil, fmt.Errorf("count courses created today: %w", err)
	}
	month, err := s.repo.CountCreatedSince(ctx, clock.BeginningOfMonth())
	if err != nil {
		return nil, fmt.Errorf("count courses created this month: %w", err)
	}

	stats := &CatalogStats{
		ByStatus:         make(map[models.CourseStatus]int64, 3),
		TotalEnrollments: totals.Enrolled,
		TotalRatings:     totals.Ratings,
		CreatedToday:     today,
		CreatedThisMonth: month,
	}
	for _, st := range []models.CourseStatus{models.CourseStatusDraft, models.CourseStatusPublished, models.CourseStatusArchived} {
		stats.ByStatus[st] = 0
	}
	for st, n := range byStatus {
		stats.ByStatus[st] = n
		stats.TotalCourses += n
	}
	if totals.Ratings > 0 {
		stats.AverageRating = round2(totals.RatingSum / float64(totals.Ratings))
	}
	return stats, nil
}

func (s *CourseService) lookupError(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("Course with ID %s not found", id)
	}
	s.log.Errorf("[COURSE] Error fetching course %s: %v", id, err)
	return fmt.Errorf("course %s: %w", id, err)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
