package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course-service/models"

	"gorm.io/gorm"
)

// CategoryService owns category identity, name uniqueness and the
// active/retired lifecycle.
type CategoryService struct {
	repo CategoryRepository
	log  Logger
}

func NewCategoryService(repo CategoryRepository, logger Logger) *CategoryService {
	return &CategoryService{repo: repo, log: logger}
}

// Create persists a new category. Names are unique across active and retired
// categories.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, badRequest("Category name must not be blank")
	}

	if err := s.ensureNameFree(ctx, in.Name); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		IsActive:    true,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Category with this name already exists")
		}
		s.log.Errorf("[CATEGORY] Error creating category: %v", err)
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Infof("[CATEGORY] Category created: %s", category.ID)
	return category, nil
}

// List returns active categories, or every category when includeInactive is set
func (s *CategoryService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	if includeInactive {
		return s.ListAll(ctx)
	}
	return s.ListActive(ctx)
}

func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.FindAll(ctx, true)
	if err != nil {
		s.log.Errorf("[CATEGORY] Error fetching categories: %v", err)
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.FindAll(ctx, false)
	if err != nil {
		s.log.Errorf("[CATEGORY] Error fetching all categories: %v", err)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get loads a category together with its courses
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.find(ctx, id, true)
}

// Require is Get without the course list. Course writes use it to validate
// their category reference.
func (s *CategoryService) Require(ctx context.Context, id string) (*models.Category, error) {
	return s.find(ctx, id, false)
}

func (s *CategoryService) Update(ctx context.Context, id string, patch CategoryPatch) (*models.Category, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, validationError(err)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, badRequest("Category name must not be blank")
	}

	category, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != category.Name {
		if err := s.ensureNameFree(ctx, *patch.Name); err != nil {
			return nil, err
		}
	}

	mergeCategoryPatch(category, patch)
	if err := s.repo.Save(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Category with this name already exists")
		}
		s.log.Errorf("[CATEGORY] Error updating category %s: %v", id, err)
		return nil, fmt.Errorf("update category %s: %w", id, err)
	}

	s.log.Infof("[CATEGORY] Category updated: %s", category.ID)
	return category, nil
}

// Delete removes the category row. Courses that still reference it are left
// untouched; the integrity sweep reports them.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Errorf("[CATEGORY] Error deleting category %s: %v", id, err)
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if affected == 0 {
		return notFound("Category with ID %s not found", id)
	}
	s.log.Infof("[CATEGORY] Category deleted: %s", id)
	return nil
}

// Deactivate retires the category. It is idempotent.
func (s *CategoryService) Deactivate(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if category.State() == models.CategoryRetired {
		return category, nil
	}

	category.Retire()
	if err := s.repo.Save(ctx, category); err != nil {
		s.log.Errorf("[CATEGORY] Error deactivating category %s: %v", id, err)
		return nil, fmt.Errorf("deactivate category %s: %w", id, err)
	}

	s.log.Infof("[CATEGORY] Category deactivated: %s", id)
	return category, nil
}

func (s *CategoryService) find(ctx context.Context, id string, withCourses bool) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id, withCourses)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Category with ID %s not found", id)
		}
		s.log.Errorf("[CATEGORY] Error fetching category %s: %v", id, err)
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	return category, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil:
		return conflict("Category with this name already exists")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.log.Errorf("[CATEGORY] Error checking category name: %v", err)
		return fmt.Errorf("check category name: %w", err)
	}
}
