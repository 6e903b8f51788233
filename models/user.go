package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the caregiver account that owns a child profile and its logs.
type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FullName      string
	Disabled      bool
	Federated     bool // created via a federated provider; no local password
	ResetToken    string
	ResetTokenExp time.Time
}
