package main

import (
	"context"
	"net/http"
	"testing"

	"course-service/client"
	"course-service/models"
	"course-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	categories []models.Category
	courses    []services.CreateCourseInput
}

func (f *fakeAPI) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeAPI) CreateCategory(ctx context.Context, in services.CreateCategoryInput) (*models.Category, error) {
	c := models.Category{ID: "cat-" + in.Name, Name: in.Name, IsActive: *in.IsActive}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeAPI) CreateCourse(ctx context.Context, in services.CreateCourseInput) (*models.Course, error) {
	if in.Title == "" {
		return nil, &client.APIError{StatusCode: http.StatusBadRequest, Message: "Validation failed!"}
	}
	f.courses = append(f.courses, in)
	return &models.Course{ID: "course-" + in.Title, Title: in.Title, CategoryID: in.CategoryID}, nil
}

const sampleCatalog = `
categories:
  - name: Web Development
    icon: globe
    courses:
      - title: Modern Web
        price: 99.99
        instructorId: ins-1
        instructorName: Tim
        status: published
        tags: [html, css]
      - title: ""
        price: 1
  - name: Data
    inactive: true
    courses:
      - title: SQL
        price: 10
        instructorId: ins-2
        instructorName: Edgar
`

func TestParseCatalog(t *testing.T) {
	catalog, err := parseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, catalog.Categories, 2)

	web := catalog.Categories[0]
	assert.Equal(t, "Web Development", web.Name)
	require.NotNil(t, web.Icon)
	assert.Equal(t, "globe", *web.Icon)
	require.Len(t, web.Courses, 2)
	assert.Equal(t, 99.99, web.Courses[0].Price)
	assert.Equal(t, models.CourseStatusPublished, web.Courses[0].Status)
	assert.Equal(t, []string{"html", "css"}, web.Courses[0].Tags)
	assert.True(t, catalog.Categories[1].Inactive)

	_, err = parseCatalog([]byte("categories: []"))
	assert.Error(t, err)

	_, err = parseCatalog([]byte("categories:\n  - icon: x\n"))
	assert.Error(t, err)
}

func TestImportCatalogReusesCategories(t *testing.T) {
	catalog, err := parseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	api := &fakeAPI{categories: []models.Category{{ID: "existing-web", Name: "Web Development", IsActive: true}}}
	result, err := importCatalog(context.Background(), api, catalog)
	require.NoError(t, err)

	assert.Equal(t, 1, result.CategoriesReused)
	assert.Equal(t, 1, result.CategoriesCreated)
	assert.Equal(t, 2, result.CoursesCreated)
	assert.Equal(t, 1, result.CoursesFailed)

	require.Len(t, api.courses, 2)
	assert.Equal(t, "existing-web", api.courses[0].CategoryID)
	assert.Equal(t, "cat-Data", api.courses[1].CategoryID)
	assert.False(t, api.categories[1].IsActive)
}
