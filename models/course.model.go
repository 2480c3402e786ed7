package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseStatus is the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// Valid reports whether s is one of the known statuses
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

// Course is a sellable learning unit that belongs to exactly one category
type Course struct {
	ID               string                      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title            string                      `json:"title" gorm:"type:varchar(255);not null"`
	SearchTitle      string                      `json:"-" gorm:"type:varchar(255);not null;default:'';index"`
	Description      *string                     `json:"description" gorm:"type:text"`
	Price            float64                     `json:"price" gorm:"type:decimal(10,2);not null"`
	Rating           float64                     `json:"rating" gorm:"type:decimal(3,2);not null;default:0"`
	RatingSum        float64                     `json:"-" gorm:"type:decimal(24,10);not null;default:0"`
	TotalRatings     int                         `json:"totalRatings" gorm:"not null;default:0"`
	StudentsEnrolled int                         `json:"studentsEnrolled" gorm:"not null;default:0"`
	TotalLessons     int                         `json:"totalLessons" gorm:"not null;default:0"`
	TotalDuration    int                         `json:"totalDuration" gorm:"not null;default:0"` // minutes
	InstructorID     string                      `json:"instructorId" gorm:"type:varchar(64);not null;index"`
	InstructorName   string                      `json:"instructorName" gorm:"type:varchar(255);not null"`
	ThumbnailURL     *string                     `json:"thumbnailUrl" gorm:"type:varchar(1024)"`
	PreviewVideoURL  *string                     `json:"previewVideoUrl" gorm:"type:varchar(1024)"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	Status           CourseStatus                `json:"status" gorm:"type:varchar(20);not null;index"`
	IsPublished      bool                        `json:"isPublished" gorm:"not null"`
	CategoryID       string                      `json:"categoryId" gorm:"type:varchar(36);not null;index"`
	Category         *Category                   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt        time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

// SyncPublished derives IsPublished from Status. Every write path calls it.
func (c *Course) SyncPublished() {
	c.IsPublished = c.Status == CourseStatusPublished
}

// SyncSearchTitle refreshes the lowercased title used by title search. Every
// write path that sets Title calls it.
func (c *Course) SyncSearchTitle() {
	c.SearchTitle = SearchKey(c.Title)
}

// SearchKey folds s the same way stored search titles are folded
func SearchKey(s string) string {
	return strings.ToLower(s)
}
