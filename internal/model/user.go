package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a stored user profile record.
//
// Email carries a unique index: it is the authoritative guard against the
// window between the service-level duplicate check and the insert, where two
// concurrent writers can both pass the check.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Age       *int      `json:"age,omitempty"`
	City      *string   `json:"city,omitempty" gorm:"size:100"`
	Phone     *string   `json:"phone,omitempty" gorm:"size:50"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
