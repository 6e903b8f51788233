package models

import "time"

// GrowthLog is a dated height/weight measurement. The id is generated by
// the service (uuid). Edits are delete+recreate; there is no in-place
// update path.
type GrowthLog struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"index;not null"`
	Date      time.Time `gorm:"index;not null"`
	HeightCm  float64
	WeightKg  float64
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
}
