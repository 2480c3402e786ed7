package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryState is the lifecycle of a category. Retired categories stay valid
// course references but are hidden from the default listing.
type CategoryState string

const (
	CategoryActive  CategoryState = "active"
	CategoryRetired CategoryState = "retired"
)

type Category struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description *string   `json:"description" gorm:"type:text"`
	Icon        *string   `json:"icon" gorm:"type:varchar(255)"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	Courses     []Course  `json:"courses,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Category) State() CategoryState {
	if c.IsActive {
		return CategoryActive
	}
	return CategoryRetired
}

// Retire moves the category to the retired state. Retiring twice is a no-op.
func (c *Category) Retire() {
	c.IsActive = false
}
