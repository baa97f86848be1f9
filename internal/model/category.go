package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategoryColor is assigned when a category is created without a color.
const DefaultCategoryColor = "slate"

// UncategorizedColor is the neutral color of the synthetic report bucket for
// expenses without a category.
const UncategorizedColor = "gray"

// Category is a per-user expense label. Names are unique within one owner's
// scope; two different users may both have "Groceries".
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_categories_owner_name"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_categories_owner_name"`
	Color     string    `json:"color" gorm:"size:50;not null;default:'slate'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
