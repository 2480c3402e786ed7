package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"course-service/client"
	"course-service/config"
	"course-service/models"
	"course-service/services"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML seed format:
//
//	categories:
//	  - name: Web Development
//	    icon: globe
//	    courses:
//	      - title: Modern Web
//	        price: 99.99
//	        instructorId: ins-1
//	        instructorName: Tim
//	        status: published
//	        tags: [html, css]
type catalogFile struct {
	Categories []catalogCategory `yaml:"categories"`
}

type catalogCategory struct {
	Name        string          `yaml:"name"`
	Description *string         `yaml:"description"`
	Icon        *string         `yaml:"icon"`
	Inactive    bool            `yaml:"inactive"`
	Courses     []catalogCourse `yaml:"courses"`
}

type catalogCourse struct {
	Title           string              `yaml:"title"`
	Description     *string             `yaml:"description"`
	Price           float64             `yaml:"price"`
	InstructorID    string              `yaml:"instructorId"`
	InstructorName  string              `yaml:"instructorName"`
	ThumbnailURL    *string             `yaml:"thumbnailUrl"`
	PreviewVideoURL *string             `yaml:"previewVideoUrl"`
	Tags            []string            `yaml:"tags"`
	Status          models.CourseStatus `yaml:"status"`
	TotalLessons    int                 `yaml:"totalLessons"`
	TotalDuration   int                 `yaml:"totalDuration"`
}

// catalogAPI is the part of client.Client the import uses
type catalogAPI interface {
	ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error)
	CreateCategory(ctx context.Context, in services.CreateCategoryInput) (*models.Category, error)
	CreateCourse(ctx context.Context, in services.CreateCourseInput) (*models.Course, error)
}

type importResult struct {
	CategoriesCreated int
	CategoriesReused  int
	CoursesCreated    int
	CoursesFailed     int
}

func main() {
	cfg := config.LoadConfig()

	file := flag.String("file", "catalog.yaml", "YAML catalog to import")
	baseURL := flag.String("api", "http://localhost:"+cfg.Port+cfg.APIPrefix, "catalog API base URL")
	flag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to open catalog file: %v", err)
	}

	catalog, err := parseCatalog(raw)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := importCatalog(ctx, client.New(*baseURL), catalog)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import completed: %d categories created, %d reused, %d courses created, %d failed",
		result.CategoriesCreated, result.CategoriesReused, result.CoursesCreated, result.CoursesFailed)
}

func parseCatalog(raw []byte) (*catalogFile, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, err
	}
	if len(catalog.Categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}
	for i, c := range catalog.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category %d has no name", i+1)
		}
	}
	return &catalog, nil
}

// importCatalog creates missing categories, reusing existing ones by name, then
// their courses. A course the API rejects is logged and skipped.
func importCatalog(ctx context.Context, api catalogAPI, catalog *catalogFile) (importResult, error) {
	var result importResult

	existing, err := api.ListCategories(ctx, true)
	if err != nil {
		return result, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	for _, cat := range catalog.Categories {
		categoryID, ok := byName[cat.Name]
		if ok {
			result.CategoriesReused++
		} else {
			active := !cat.Inactive
			created, err := api.CreateCategory(ctx, services.CreateCategoryInput{
				Name:        cat.Name,
				Description: cat.Description,
				Icon:        cat.Icon,
				IsActive:    &active,
			})
			if err != nil {
				return result, fmt.Errorf("create category %q: %w", cat.Name, err)
			}
			categoryID = created.ID
			byName[cat.Name] = categoryID
			result.CategoriesCreated++
			log.Printf("Created category %s (%s)", cat.Name, categoryID)
		}

		for _, course := range cat.Courses {
			_, err := api.CreateCourse(ctx, services.CreateCourseInput{
				Title:           course.Title,
				Description:     course.Description,
				Price:           course.Price,
				InstructorID:    course.InstructorID,
				InstructorName:  course.InstructorName,
				CategoryID:      categoryID,
				ThumbnailURL:    course.ThumbnailURL,
				PreviewVideoURL: course.PreviewVideoURL,
				Tags:            course.Tags,
				Status:          course.Status,
				TotalLessons:    course.TotalLessons,
				TotalDuration:   course.TotalDuration,
			})
			if err != nil {
				var apiErr *client.APIError
				if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
					return result, fmt.Errorf("create course %q: %w", course.Title, err)
				}
				log.Printf("Skipping course %q: %v", course.Title, err)
				result.CoursesFailed++
				continue
			}
			result.CoursesCreated++
		}
	}
	return result, nil
}
