package models

import (
	"time"

	"gorm.io/gorm"
)

// ChildProfile holds the tracked child's details. One per caregiver account.
type ChildProfile struct {
	gorm.Model
	UserID    uint      `gorm:"uniqueIndex;not null"` // FK → users.id
	Name      string
	BirthDate time.Time `gorm:"not null"`
	// Caregiver confirmed pediatrician approval to start solids before
	// the 6-month mark. Lets the stage classifier treat an under-6-month
	// child as stage 6_months.
	EarlyStartApproved bool
	PhotoURL           string
}
