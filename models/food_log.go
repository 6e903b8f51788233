package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal slots a food log can be attached to. An empty slot is valid: the
// entry then counts against the date alone.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

// TriedFoodLog records one food tried on a date, optionally in a meal slot.
// Entries are append-only: edits never happen in place, removal is a soft
// delete so the entry drops out of every query. Duplicates of the same
// (food, date, slot) are allowed and simply accumulate.
type TriedFoodLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	FoodName string    `gorm:"not null"`
	Date     time.Time `gorm:"index;not null"` // truncated to YYYY-MM-DD
	MealSlot string    `gorm:"size:20"`        // breakfast|lunch|dinner|snack or ""
	Reaction string    `gorm:"size:20"`        // loved|liked|unsure|disliked or ""
	Notes    string    `gorm:"type:text"`
	PhotoURL string
}
