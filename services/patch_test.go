package services

import (
	"testing"

	"course-service/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" go ", "", "web", "go", "  ", "api"})
	assert.Equal(t, []string{"go", "web", "api"}, []string(got))

	assert.NotNil(t, normalizeTags(nil))
	assert.Empty(t, normalizeTags(nil))
}

func TestMergeCoursePatchDerivesPublished(t *testing.T) {
	course := &models.Course{
		Title:      "Old",
		Price:      10,
		Status:     models.CourseStatusDraft,
		CategoryID: "a",
		Category:   &models.Category{ID: "a"},
	}

	published := models.CourseStatusPublished
	title := "New"
	category := "b"
	mergeCoursePatch(course, CoursePatch{Title: &title, Status: &published, CategoryID: &category})

	assert.Equal(t, "New", course.Title)
	assert.Equal(t, "new", course.SearchTitle)
	assert.Equal(t, 10.0, course.Price)
	assert.True(t, course.IsPublished)
	assert.Equal(t, "b", course.CategoryID)
	assert.Nil(t, course.Category)

	archived := models.CourseStatusArchived
	mergeCoursePatch(course, CoursePatch{Status: &archived})
	assert.False(t, course.IsPublished)
}

func TestMergeCategoryPatchLeavesUnsetFields(t *testing.T) {
	desc := "old"
	category := &models.Category{Name: "Data", Description: &desc, IsActive: true}

	inactive := false
	mergeCategoryPatch(category, CategoryPatch{IsActive: &inactive})

	assert.Equal(t, "Data", category.Name)
	assert.Equal(t, "old", *category.Description)
	assert.False(t, category.IsActive)
}
