// Package client is a typed HTTP client for the course catalog API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"course-service/models"
	"course-service/services"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the catalog API
type APIError struct {
	StatusCode int
	Message    string
	// Fields is set on validation failures
	Fields map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api: %d %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client calls the catalog API rooted at baseURL, e.g. http://localhost:3000/api/v1
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// only idempotent reads are retried
			return r != nil && r.Request.Method == resty.MethodGet && r.StatusCode() >= 500
		})
	return &Client{http: http}
}

// ============ Categories ============

func (c *Client) CreateCategory(ctx context.Context, in services.CreateCategoryInput) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, resty.MethodPost, "/categories", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	var out []models.Category
	q := url.Values{"includeInactive": {strconv.FormatBool(includeInactive)}}
	if err := c.do(ctx, resty.MethodGet, "/categories", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, resty.MethodGet, "/categories/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, patch services.CategoryPatch) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, resty.MethodPatch, "/categories/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, resty.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) DeactivateCategory(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, resty.MethodPatch, "/categories/"+url.PathEscape(id)+"/deactivate", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============ Courses ============

func (c *Client) CreateCourse(ctx context.Context, in services.CreateCourseInput) (*models.Course, error) {
	var out models.Course
	if err := c.do(ctx, resty.MethodPost, "/courses", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCourses sends q as query params. Zero Page or Limit leaves the server default.
func (c *Client) ListCourses(ctx context.Context, q services.CourseQuery) (*services.CoursePage, error) {
	params := url.Values{}
	if q.Page != 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit != 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	for key, value := range map[string]string{
		"categoryId": q.CategoryID,
		"status":     q.Status,
		"search":     q.Search,
		"sortBy":     q.SortBy,
		"sortOrder":  q.SortOrder,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}

	var out services.CoursePage
	if err := c.do(ctx, resty.MethodGet, "/courses", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var out models.Course
	if err := c.do(ctx, resty.MethodGet, "/courses/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, patch services.CoursePatch) (*models.Course, error) {
	var out models.Course
	if err := c.do(ctx, resty.MethodPatch, "/courses/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, resty.MethodDelete, "/courses/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) RateCourse(ctx context.Context, id string, rating float64) (*models.Course, error) {
	var out models.Course
	body := map[string]float64{"rating": rating}
	if err := c.do(ctx, resty.MethodPatch, "/courses/"+url.PathEscape(id)+"/rating", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnrollCourse(ctx context.Context, id string) (*models.Course, error) {
	var out models.Course
	if err := c.do(ctx, resty.MethodPatch, "/courses/"+url.PathEscape(id)+"/enroll", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	var out []models.Course
	if err := c.do(ctx, resty.MethodGet, "/courses/instructor/"+url.PathEscape(instructorID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CatalogStats(ctx context.Context) (*services.CatalogStats, error) {
	var out services.CatalogStats
	if err := c.do(ctx, resty.MethodGet, "/courses/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes the envelope's data into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env envelope
	if err := sonic.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if resp.IsError() || !env.Status {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
		if len(env.Data) > 0 && string(env.Data) != "null" {
			_ = sonic.Unmarshal(env.Data, &apiErr.Fields)
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}
