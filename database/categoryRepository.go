package database

import (
	"context"

	"course-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository is the gorm-backed services.CategoryRepository
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string, withCourses bool) (*models.Category, error) {
	q := r.db.WithContext(ctx)
	if withCourses {
		q = q.Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	}

	var category models.Category
	if err := q.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save writes every column of category, zero values included. It never inserts.
func (r *CategoryRepository) Save(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).
		Model(category).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Updates(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	return res.RowsAffected, res.Error
}
