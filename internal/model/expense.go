package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCurrency is used when an expense is recorded without one.
const DefaultCurrency = "INR"

// Expense is a single spending record. Amounts are stored as non-negative
// integer cents; SpentAt is a calendar date with no time component.
type Expense struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index"`
	AmountCents int64      `json:"amount_cents" gorm:"not null"`
	Currency    string     `json:"currency" gorm:"size:8;not null;default:'INR'"`
	Note        string     `json:"note" gorm:"size:500"`
	SpentAt     Date       `json:"spent_at" gorm:"type:date;not null;index"`
	CategoryID  *uuid.UUID `json:"category_id" gorm:"type:char(36);index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
