package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"course-service/config"
	"course-service/database"
	"course-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		APIPrefix:       "/api/v1",
		CORSOrigin:      "*",
		DBDriver:        "sqlite",
		SQLitePath:      fmt.Sprintf("file:http_%s?mode=memory&cache=shared", name),
		DBMaxOpenConns:  1,
		DBMaxIdleConns:  1,
		DefaultPageSize: 10,
	}
	logger := utils.NewNopLogger()
	db, err := database.ConnectDb(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return NewApp(Dependencies{Config: cfg, DB: db, Logger: logger})
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type courseView struct {
	ID           string  `json:"id"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"totalRatings"`
	IsPublished  bool    `json:"isPublished"`
	Status       string  `json:"status"`
	Category     *struct {
		Name string `json:"name"`
	} `json:"category"`
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)
}

func TestCatalogScenario(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Web Development"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	category := decode[struct {
		ID       string `json:"id"`
		IsActive bool   `json:"isActive"`
	}](t, env.Data)
	assert.True(t, category.IsActive)

	status, env = call(t, app, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Web Development"})
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Status)

	status, env = call(t, app, http.MethodPost, "/api/v1/courses", map[string]any{
		"title":          "Modern Web",
		"price":          99.99,
		"instructorId":   "instructor-1",
		"instructorName": "Tim",
		"categoryId":     category.ID,
		"status":         "published",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	course := decode[courseView](t, env.Data)
	assert.Equal(t, 99.99, course.Price)
	assert.True(t, course.IsPublished)

	status, env = call(t, app, http.MethodPatch, "/api/v1/courses/"+course.ID+"/rating?rating=5", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	rated := decode[courseView](t, env.Data)
	assert.Equal(t, 5.0, rated.Rating)
	assert.Equal(t, 1, rated.TotalRatings)

	status, env = call(t, app, http.MethodPatch, "/api/v1/courses/"+course.ID+"/rating", map[string]any{"rating": 3})
	require.Equal(t, http.StatusOK, status, env.Message)
	rated = decode[courseView](t, env.Data)
	assert.Equal(t, 4.0, rated.Rating)
	assert.Equal(t, 2, rated.TotalRatings)

	status, _ = call(t, app, http.MethodPatch, "/api/v1/courses/"+course.ID+"/rating?rating=5.5", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = call(t, app, http.MethodGet, "/api/v1/courses/"+course.ID, nil)
	require.Equal(t, http.StatusOK, status)
	fetched := decode[courseView](t, env.Data)
	assert.Equal(t, 2, fetched.TotalRatings)
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Web Development", fetched.Category.Name)

	status, env = call(t, app, http.MethodPatch, "/api/v1/courses/"+course.ID+"/enroll", nil)
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = call(t, app, http.MethodGet, "/api/v1/courses/stats", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	stats := decode[struct {
		TotalCourses     int64   `json:"totalCourses"`
		TotalEnrollments int64   `json:"totalEnrollments"`
		AverageRating    float64 `json:"averageRating"`
	}](t, env.Data)
	assert.EqualValues(t, 1, stats.TotalCourses)
	assert.EqualValues(t, 1, stats.TotalEnrollments)
	assert.Equal(t, 4.0, stats.AverageRating)

	status, env = call(t, app, http.MethodGet, "/api/v1/courses/instructor/instructor-1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]courseView](t, env.Data), 1)
}

func TestCourseListing(t *testing.T) {
	app := newTestApp(t)

	_, env := call(t, app, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Paging"})
	categoryID := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	for i := 0; i < 15; i++ {
		status, env := call(t, app, http.MethodPost, "/api/v1/courses", map[string]any{
			"title":          fmt.Sprintf("Course %02d", i),
			"price":          10 + i,
			"instructorId":   "i",
			"instructorName": "I",
			"categoryId":     categoryID,
		})
		require.Equal(t, http.StatusCreated, status, env.Message)
	}

	status, env := call(t, app, http.MethodGet, "/api/v1/courses?page=2&limit=10&sortBy=price&sortOrder=asc", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	page := decode[struct {
		Data  []courseView `json:"data"`
		Total int64        `json:"total"`
		Page  int          `json:"page"`
		Limit int          `json:"limit"`
	}](t, env.Data)
	assert.Len(t, page.Data, 5)
	assert.EqualValues(t, 15, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)

	status, env = call(t, app, http.MethodGet, "/api/v1/courses", nil)
	require.Equal(t, http.StatusOK, status)
	defaults := decode[struct {
		Data  []courseView `json:"data"`
		Page  int          `json:"page"`
		Limit int          `json:"limit"`
	}](t, env.Data)
	assert.Len(t, defaults.Data, 10)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, 10, defaults.Limit)

	status, _ = call(t, app, http.MethodGet, "/api/v1/courses?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/courses?sortBy=secret", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCategoryRoutes(t *testing.T) {
	app := newTestApp(t)

	_, env := call(t, app, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Retire me"})
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID
	call(t, app, http.MethodPost, "/api/v1/categories", map[string]any{"name": "Keep me"})

	status, env := call(t, app, http.MethodPatch, "/api/v1/categories/"+id+"/deactivate", nil)
	require.Equal(t, http.StatusOK, status, env.Message)

	_, env = call(t, app, http.MethodGet, "/api/v1/categories", nil)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	_, env = call(t, app, http.MethodGet, "/api/v1/categories?includeInactive=true", nil)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 2)

	status, env = call(t, app, http.MethodPatch, "/api/v1/categories/"+id, map[string]any{"description": "old stuff"})
	require.Equal(t, http.StatusOK, status, env.Message)
	updated := decode[struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsActive    bool   `json:"isActive"`
	}](t, env.Data)
	assert.Equal(t, "Retire me", updated.Name)
	assert.Equal(t, "old stuff", updated.Description)
	assert.False(t, updated.IsActive)

	status, _ = call(t, app, http.MethodGet, "/api/v1/categories/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodDelete, "/api/v1/categories/"+id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/categories/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateCourseErrors(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/v1/courses", map[string]any{
		"title":          "Nowhere",
		"price":          5,
		"instructorId":   "i",
		"instructorName": "I",
		"categoryId":     "6f1c1d9e-6c4b-4d7e-9f0a-000000000000",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Status)

	status, env = call(t, app, http.MethodPost, "/api/v1/courses", map[string]any{"price": -3})
	assert.Equal(t, http.StatusBadRequest, status)
	fields := decode[map[string]string](t, env.Data)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "categoryId")
	assert.Contains(t, fields, "price")

	status, _ = call(t, app, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
