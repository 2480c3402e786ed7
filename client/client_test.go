package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"

	"course-service/config"
	"course-service/database"
	"course-service/models"
	"course-service/routers"
	"course-service/services"
	"course-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		APIPrefix:       "/api/v1",
		CORSOrigin:      "*",
		DBDriver:        "sqlite",
		SQLitePath:      fmt.Sprintf("file:client_%s?mode=memory&cache=shared", name),
		DBMaxOpenConns:  1,
		DBMaxIdleConns:  1,
		DefaultPageSize: 10,
	}
	logger := utils.NewNopLogger()
	db, err := database.ConnectDb(cfg, logger)
	require.NoError(t, err)

	app := routers.NewApp(routers.Dependencies{Config: cfg, DB: db, Logger: logger})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()

	t.Cleanup(func() {
		_ = app.Shutdown()
		_ = database.Close(db)
	})
	return New("http://" + ln.Addr().String() + "/api/v1")
}

func TestClientCatalogFlow(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	category, err := c.CreateCategory(ctx, services.CreateCategoryInput{Name: "Web Development"})
	require.NoError(t, err)
	assert.True(t, category.IsActive)

	course, err := c.CreateCourse(ctx, services.CreateCourseInput{
		Title:          "HTTP in Go",
		Price:          99.99,
		InstructorID:   "instructor-9",
		InstructorName: "Brad",
		CategoryID:     category.ID,
		Tags:           []string{"go", "http"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusDraft, course.Status)
	assert.Equal(t, []string{"go", "http"}, []string(course.Tags))

	rated, err := c.RateCourse(ctx, course.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rated.Rating)

	rated, err = c.RateCourse(ctx, course.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rated.Rating)
	assert.Equal(t, 2, rated.TotalRatings)

	enrolled, err := c.EnrollCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled.StudentsEnrolled)

	published := models.CourseStatusPublished
	updated, err := c.UpdateCourse(ctx, course.ID, services.CoursePatch{Status: &published})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, 2, updated.TotalRatings)

	page, err := c.ListCourses(ctx, services.CourseQuery{CategoryID: category.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	byInstructor, err := c.CoursesByInstructor(ctx, "instructor-9")
	require.NoError(t, err)
	assert.Len(t, byInstructor, 1)

	stats, err := c.CatalogStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalCourses)

	loaded, err := c.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Courses, 1)

	retired, err := c.DeactivateCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.False(t, retired.IsActive)

	active, err := c.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, c.DeleteCourse(ctx, course.ID))
	require.NoError(t, c.DeleteCategory(ctx, category.ID))
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.CreateCategory(ctx, services.CreateCategoryInput{Name: "Dup"})
	require.NoError(t, err)

	_, err = c.CreateCategory(ctx, services.CreateCategoryInput{Name: "Dup"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	_, err = c.GetCourse(ctx, "6f1c1d9e-6c4b-4d7e-9f0a-000000000000")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, err = c.CreateCourse(ctx, services.CreateCourseInput{Price: -1})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "title")
}
