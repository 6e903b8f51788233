package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

// ChildService holds the tracked child's profile and answers the
// stage-plan ("ideas") queries against it.
type ChildService struct {
	db    *gorm.DB
	foods *FoodLogService
}

func NewChildService(db *gorm.DB, foods *FoodLogService) *ChildService {
	return &ChildService{db: db, foods: foods}
}

type ChildInput struct {
	Name               string `json:"name"`
	BirthDate          string `json:"birth_date" binding:"required"` // YYYY-MM-DD
	EarlyStartApproved bool   `json:"early_start_approved"`
	PhotoBase64        string `json:"photo_base64"`
}

// Upsert creates or updates the single child profile for this account.
func (s *ChildService) Upsert(userID uint, input ChildInput) (*models.ChildProfile, error) {
	birth, err := time.Parse("2006-01-02", input.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if birth.After(time.Now()) {
		return nil, fmt.Errorf("%w: birth date is in the future", ErrInvalidInput)
	}

	var child models.ChildProfile
	err = s.db.Where("user_id = ?", userID).First(&child).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		child = models.ChildProfile{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	child.Name = input.Name
	child.BirthDate = birth
	child.EarlyStartApproved = input.EarlyStartApproved

	if input.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(input.PhotoBase64, "child-photos")
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		child.PhotoURL = url
	}

	if err := s.db.Save(&child).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func (s *ChildService) Get(userID uint) (*models.ChildProfile, error) {
	var child models.ChildProfile
	if err := s.db.Where("user_id = ?", userID).First(&child).Error; err != nil {
		return nil, errors.New("child profile not found")
	}
	return &child, nil
}

// StagePlanResponse is the ideas-page payload: current age, stage, and
// the stage food list split into tried/to-try.
type StagePlanResponse struct {
	Age  AgeBreakdown `json:"age"`
	Plan StagePlan    `json:"plan"`
}

// StagePlanAt classifies the child at "now" and partitions the stage's
// recommendations against everything already logged.
func (s *ChildService) StagePlanAt(userID uint, now time.Time) (*StagePlanResponse, error) {
	child, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	age, err := ClassifyAge(child.BirthDate, now, child.EarlyStartApproved)
	if err != nil {
		return nil, err
	}

	tried, err := s.foods.TriedFoodNames(userID)
	if err != nil {
		return nil, err
	}

	return &StagePlanResponse{
		Age:  age,
		Plan: PartitionStageFoods(age.Stage, tried),
	}, nil
}
