package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

// GrowthService manages dated height/weight records. Records are created
// and deleted, never updated: an edit is delete+recreate.
type GrowthService struct {
	db *gorm.DB
}

func NewGrowthService(db *gorm.DB) *GrowthService {
	return &GrowthService{db: db}
}

type GrowthInput struct {
	Date     string  `json:"date" binding:"required"` // YYYY-MM-DD
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `json:"notes"`
}

func (s *GrowthService) Create(userID uint, input GrowthInput) (*models.GrowthLog, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if input.HeightCm > 0 && input.WeightKg > 0 {
		if _, err := utils.CalculateBMI(input.HeightCm, input.WeightKg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	log := &models.GrowthLog{
		ID:       uuid.NewString(),
		UserID:   userID,
		Date:     date,
		HeightCm: input.HeightCm,
		WeightKg: input.WeightKg,
		Notes:    input.Notes,
	}
	if err := s.db.Create(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

func (s *GrowthService) List(userID uint) ([]models.GrowthLog, error) {
	var logs []models.GrowthLog
	err := s.db.Where("user_id = ?", userID).Order("date asc").Find(&logs).Error
	return logs, err
}

func (s *GrowthService) Delete(userID uint, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.GrowthLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("growth log not found")
	}
	return nil
}

// Replace edits a record the only way the model allows: drop the old row
// and create a fresh one with a new id.
func (s *GrowthService) Replace(userID uint, id string, input GrowthInput) (*models.GrowthLog, error) {
	if err := s.Delete(userID, id); err != nil {
		return nil, err
	}
	return s.Create(userID, input)
}
