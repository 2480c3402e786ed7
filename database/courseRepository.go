package database

import (
	"context"
	"time"

	"course-service/models"
	"course-service/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counters only ever change through their own atomic statements
var courseCounterColumns = []string{"rating", "rating_sum", "total_ratings", "students_enrolled"}

// CourseRepository is the gorm-backed services.CourseRepository
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// FindMany applies the filter conjunction, counts the matches, then fetches one
// page ordered by created_at, the optional sort column, and id.
func (r *CourseRepository) FindMany(ctx context.Context, f services.CourseFilter) ([]models.Course, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Course{})
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("search_title LIKE ?", "%"+models.SearchKey(f.Search)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Preload("Category").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: f.Descending})
	if f.SortColumn != "" && f.SortColumn != "created_at" {
		page = page.Order(clause.OrderByColumn{Column: clause.Column{Name: f.SortColumn}, Desc: f.Descending})
	}

	var courses []models.Course
	err := page.Order("id").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) FindByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Save writes the editable columns of course. Counters are left to
// ApplyRating and IncrementEnrollment.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	omit := append([]string{clause.Associations, "id", "created_at"}, courseCounterColumns...)
	return r.db.WithContext(ctx).
		Model(course).
		Select("*").
		Omit(omit...).
		Updates(course).Error
}

func (r *CourseRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Course{})
	return res.RowsAffected, res.Error
}

// ApplyRating folds value into the stored mean in one UPDATE. The mean is
// recomputed from rating_sum and rounded once, so rounding never accumulates.
// Assignment keys are emitted in sorted order, so rating is computed before
// rating_sum and total_ratings move even on MySQL.
func (r *CourseRepository) ApplyRating(ctx context.Context, id string, value float64) (*models.Course, error) {
	sum, divisor := r.ratingOperands()
	return r.bump(ctx, id, map[string]interface{}{
		"rating":        gorm.Expr("ROUND((rating_sum + "+sum+") / "+divisor+", 2)", value),
		"rating_sum":    gorm.Expr("rating_sum + "+sum, value),
		"total_ratings": gorm.Expr("total_ratings + ?", 1),
	})
}

// ratingOperands keeps the fold in exact DECIMAL arithmetic on Postgres and
// MySQL. SQLite has no exact decimal type, so there the divisor is forced to
// REAL to avoid integer division.
func (r *CourseRepository) ratingOperands() (sum, divisor string) {
	if r.db.Dialector.Name() == "sqlite" {
		return "?", "(total_ratings + 1.0)"
	}
	return "CAST(? AS DECIMAL(24,10))", "(total_ratings + 1)"
}

func (r *CourseRepository) IncrementEnrollment(ctx context.Context, id string) (*models.Course, error) {
	return r.bump(ctx, id, map[string]interface{}{
		"students_enrolled": gorm.Expr("students_enrolled + ?", 1),
	})
}

// bump applies a counter update and reads the row back in the same transaction
func (r *CourseRepository) bump(ctx context.Context, id string, updates map[string]interface{}) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Course{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Category").Where("id = ?", id).First(&course).Error
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) CountByStatus(ctx context.Context) (map[models.CourseStatus]int64, error) {
	var rows []struct {
		Status models.CourseStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.CourseStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *CourseRepository) Totals(ctx context.Context) (services.CourseTotals, error) {
	var totals services.CourseTotals
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Select("COALESCE(SUM(students_enrolled), 0) AS enrolled, " +
			"COALESCE(SUM(rating_sum), 0) AS rating_sum, " +
			"COALESCE(SUM(total_ratings), 0) AS ratings").
		Scan(&totals).Error
	return totals, err
}

func (r *CourseRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

// RepairPublishedFlags re-derives is_published from status on rows where they disagree
func (r *CourseRepository) RepairPublishedFlags(ctx context.Context) (int64, error) {
	var repaired int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Course{}).
			Where("status = ? AND is_published = ?", models.CourseStatusPublished, false).
			UpdateColumn("is_published", true)
		if res.Error != nil {
			return res.Error
		}
		repaired += res.RowsAffected

		res = tx.Model(&models.Course{}).
			Where("status <> ? AND is_published = ?", models.CourseStatusPublished, true).
			UpdateColumn("is_published", false)
		if res.Error != nil {
			return res.Error
		}
		repaired += res.RowsAffected
		return nil
	})
	return repaired, err
}

// FindOrphanedCategoryIDs lists category ids referenced by courses but missing from categories
func (r *CourseRepository) FindOrphanedCategoryIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Joins("LEFT JOIN categories ON categories.id = courses.category_id").
		Where("categories.id IS NULL").
		Distinct().
		Order("courses.category_id").
		Pluck("courses.category_id", &ids).Error
	return ids, err
}
