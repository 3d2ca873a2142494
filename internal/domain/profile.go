package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors a user account owned by the hosted auth subsystem.
// The pipeline only reads profiles to resolve email matches; it never
// creates or mutates them.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName string    `json:"firstName" gorm:"column:first_name"`
	LastName  string    `json:"lastName" gorm:"column:last_name"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
