package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

// FoodLogService owns the tried-food log collection: append-only writes,
// soft delete, and the derived weekly balance.
type FoodLogService struct {
	db     *gorm.DB
	alerts *AlertService
	lookup FoodLookup
}

func NewFoodLogService(db *gorm.DB, alerts *AlertService) *FoodLogService {
	return &FoodLogService{db: db, alerts: alerts, lookup: DefaultFoodLookup()}
}

type FoodLogInput struct {
	FoodName string `json:"food_name" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	MealSlot string `json:"meal_slot"`
	Reaction string `json:"reaction"`
	Notes    string `json:"notes"`
}

// LogFood appends one entry. Duplicates of the same (food, date, slot)
// are accepted; they just accumulate. The child's age drives the safety
// check so hazardous foods raise an alert alongside the saved entry.
func (s *FoodLogService) LogFood(userID uint, input FoodLogInput) (*models.TriedFoodLog, []utils.Warning, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	log := &models.TriedFoodLog{
		UserID:   userID,
		FoodName: strings.TrimSpace(input.FoodName),
		Date:     date,
		MealSlot: input.MealSlot,
		Reaction: input.Reaction,
		Notes:    input.Notes,
	}
	if log.FoodName == "" {
		return nil, nil, fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}

	warnings := s.assessSafety(userID, log.FoodName)

	if err := s.db.Create(log).Error; err != nil {
		return nil, nil, err
	}

	for _, w := range warnings {
		if w.Severity == utils.High && s.alerts != nil {
			s.alerts.Emit(userID, "warning", w.Message)
		}
	}
	return log, warnings, nil
}

func (s *FoodLogService) assessSafety(userID uint, foodName string) []utils.Warning {
	var child models.ChildProfile
	if err := s.db.Where("user_id = ?", userID).First(&child).Error; err != nil {
		return nil // no child profile yet; nothing to assess against
	}
	age, err := ClassifyAge(child.BirthDate, time.Now(), child.EarlyStartApproved)
	if err != nil {
		return nil
	}
	return utils.AssessInfantFoodSafety(foodName, age.TotalMonths)
}

func (s *FoodLogService) ListLogs(userID uint) ([]models.TriedFoodLog, error) {
	var logs []models.TriedFoodLog
	err := s.db.Where("user_id = ?", userID).Order("date desc, id desc").Find(&logs).Error
	return logs, err
}

// LogsSince returns entries on or after the given day.
func (s *FoodLogService) LogsSince(userID uint, since time.Time) ([]models.TriedFoodLog, error) {
	var logs []models.TriedFoodLog
	err := s.db.
		Where("user_id = ? AND date >= ?", userID, dayStart(since)).
		Find(&logs).Error
	return logs, err
}

// RemoveLog soft-deletes one entry; it drops out of every query but is
// never rewritten in place.
func (s *FoodLogService) RemoveLog(userID, logID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.TriedFoodLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("log not found")
	}
	return nil
}

// LoggedOn reports whether (food, date, slot) already has an entry — used
// to pre-fill the log dialog.
func (s *FoodLogService) LoggedOn(userID uint, foodName string, date time.Time, mealSlot string) (*models.TriedFoodLog, bool, error) {
	var log models.TriedFoodLog
	err := s.db.
		Where("user_id = ? AND food_name = ? AND date = ? AND meal_slot = ?",
			userID, foodName, dayStart(date), mealSlot).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &log, true, nil
}

// WeeklyBalance loads the trailing window and derives the dashboard.
func (s *FoodLogService) WeeklyBalance(userID uint, now time.Time) (WeeklyBalance, error) {
	logs, err := s.LogsSince(userID, now.AddDate(0, 0, -7))
	if err != nil {
		return WeeklyBalance{}, err
	}
	return ComputeWeeklyBalance(logs, now, s.lookup), nil
}

// TriedFoodNames returns the distinct food names ever logged, for the
// stage tried/untried partition.
func (s *FoodLogService) TriedFoodNames(userID uint) ([]string, error) {
	var names []string
	err := s.db.Model(&models.TriedFoodLog{}).
		Where("user_id = ?", userID).
		Distinct("food_name").
		Pluck("food_name", &names).Error
	return names, err
}

// DietSummary renders the week's intake as text for the suggestion
// endpoint prompt.
func (s *FoodLogService) DietSummary(userID uint, now time.Time) (string, error) {
	logs, err := s.LogsSince(userID, now.AddDate(0, 0, -7))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Foods tried this week:\n")
	if len(logs) == 0 {
		sb.WriteString("- (nothing logged yet)\n")
	}
	for _, l := range logs {
		sb.WriteString("- " + l.FoodName)
		if l.MealSlot != "" {
			sb.WriteString(" (" + l.MealSlot + ")")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
