package services

import (
	"strings"

	"course-service/models"

	"gorm.io/datatypes"
)

type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryPatch holds the fields a category update may touch. Nil means unchanged.
type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"isActive"`
}

type CreateCourseInput struct {
	Title           string              `json:"title" validate:"required,max=255"`
	Description     *string             `json:"description"`
	Price           float64             `json:"price" validate:"gte=0"`
	InstructorID    string              `json:"instructorId" validate:"required,max=64"`
	InstructorName  string              `json:"instructorName" validate:"required,max=255"`
	CategoryID      string              `json:"categoryId" validate:"required,max=36"`
	ThumbnailURL    *string             `json:"thumbnailUrl" validate:"omitempty,max=1024"`
	PreviewVideoURL *string             `json:"previewVideoUrl" validate:"omitempty,max=1024"`
	Tags            []string            `json:"tags"`
	Status          models.CourseStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	TotalLessons    int                 `json:"totalLessons" validate:"gte=0"`
	TotalDuration   int                 `json:"totalDuration" validate:"gte=0"`
}

// CoursePatch holds the fields a course update may touch. There is no
// IsPublished: it is always derived from Status.
type CoursePatch struct {
	Title           *string              `json:"title" validate:"omitempty,min=1,max=255"`
	Description     *string              `json:"description"`
	Price           *float64             `json:"price" validate:"omitempty,gte=0"`
	InstructorID    *string              `json:"instructorId" validate:"omitempty,min=1,max=64"`
	InstructorName  *string              `json:"instructorName" validate:"omitempty,min=1,max=255"`
	CategoryID      *string              `json:"categoryId" validate:"omitempty,min=1,max=36"`
	ThumbnailURL    *string              `json:"thumbnailUrl" validate:"omitempty,max=1024"`
	PreviewVideoURL *string              `json:"previewVideoUrl" validate:"omitempty,max=1024"`
	Tags            *[]string            `json:"tags"`
	Status          *models.CourseStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	TotalLessons    *int                 `json:"totalLessons" validate:"omitempty,gte=0"`
	TotalDuration   *int                 `json:"totalDuration" validate:"omitempty,gte=0"`
}

func mergeCategoryPatch(c *models.Category, p CategoryPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.Icon != nil {
		c.Icon = p.Icon
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

func mergeCoursePatch(c *models.Course, p CoursePatch) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.InstructorID != nil {
		c.InstructorID = *p.InstructorID
	}
	if p.InstructorName != nil {
		c.InstructorName = *p.InstructorName
	}
	if p.CategoryID != nil {
		c.CategoryID = *p.CategoryID
		c.Category = nil
	}
	if p.ThumbnailURL != nil {
		c.ThumbnailURL = p.ThumbnailURL
	}
	if p.PreviewVideoURL != nil {
		c.PreviewVideoURL = p.PreviewVideoURL
	}
	if p.Tags != nil {
		c.Tags = normalizeTags(*p.Tags)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.TotalLessons != nil {
		c.TotalLessons = *p.TotalLessons
	}
	if p.TotalDuration != nil {
		c.TotalDuration = *p.TotalDuration
	}
	c.SyncPublished()
	c.SyncSearchTitle()
}

// normalizeTags trims tags, drops blanks and repeats, and keeps first-seen order
func normalizeTags(tags []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
