package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

func seedChild(t *testing.T, svc *FoodLogService, userID uint, ageMonths int) {
	t.Helper()
	birth := time.Now().AddDate(0, -ageMonths, 0)
	require.NoError(t, svc.db.Create(&models.ChildProfile{UserID: userID, Name: "Kit", BirthDate: birth}).Error)
}

func TestFoodLogService_DuplicatesAccumulate(t *testing.T) {
	svc := NewFoodLogService(newTestDB(t), nil)

	input := FoodLogInput{FoodName: "Banana", Date: "2025-06-15", MealSlot: models.SlotBreakfast}
	_, _, err := svc.LogFood(1, input)
	require.NoError(t, err)
	_, _, err = svc.LogFood(1, input)
	require.NoError(t, err)

	logs, err := svc.ListLogs(1)
	require.NoError(t, err)
	assert.Len(t, logs, 2, "uniqueness is not enforced; duplicates accumulate")
}

func TestFoodLogService_LoggedOnPrefill(t *testing.T) {
	svc := NewFoodLogService(newTestDB(t), nil)

	_, _, err := svc.LogFood(1, FoodLogInput{FoodName: "Banana", Date: "2025-06-15", MealSlot: models.SlotLunch})
	require.NoError(t, err)

	date := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	log, found, err := svc.LoggedOn(1, "Banana", date, models.SlotLunch)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Banana", log.FoodName)

	// a different slot is a different address
	_, found, err = svc.LoggedOn(1, "Banana", date, models.SlotDinner)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFoodLogService_RemoveExcludesFromQueries(t *testing.T) {
	svc := NewFoodLogService(newTestDB(t), nil)

	log, _, err := svc.LogFood(1, FoodLogInput{FoodName: "Banana", Date: "2025-06-15"})
	require.NoError(t, err)
	_, _, err = svc.LogFood(1, FoodLogInput{FoodName: "Oatmeal", Date: "2025-06-15"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLog(1, log.ID))

	logs, err := svc.ListLogs(1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Oatmeal", logs[0].FoodName)

	names, err := svc.TriedFoodNames(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oatmeal"}, names)

	assert.Error(t, svc.RemoveLog(1, log.ID), "already removed")
	assert.Error(t, svc.RemoveLog(2, 999), "someone else's log")
}

func TestFoodLogService_InvalidInput(t *testing.T) {
	svc := NewFoodLogService(newTestDB(t), nil)

	_, _, err := svc.LogFood(1, FoodLogInput{FoodName: "Banana", Date: "15/06/2025"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.LogFood(1, FoodLogInput{FoodName: "   ", Date: "2025-06-15"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFoodLogService_SafetyWarningsForYoungChild(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodLogService(db, NewAlertService(db, nil))
	seedChild(t, svc, 1, 8)

	_, warnings, err := svc.LogFood(1, FoodLogInput{FoodName: "Honey", Date: time.Now().Format("2006-01-02")})
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Equal(t, utils.High, warnings[0].Severity)

	// the high-severity finding raised a persisted alert
	var alerts []models.Alert
	require.NoError(t, db.Where("user_id = ?", 1).Find(&alerts).Error)
	assert.NotEmpty(t, alerts)
}

func TestFoodLogService_WeeklyBalanceEndToEnd(t *testing.T) {
	svc := NewFoodLogService(newTestDB(t), nil)
	now := time.Now()
	day := func(ago int) string { return now.AddDate(0, 0, -ago).Format("2006-01-02") }

	for _, c := range []struct {
		food string
		ago  int
		slot string
	}{
		{"Oatmeal", 0, models.SlotBreakfast},
		{"Yogurt", 1, models.SlotSnack},
		{"Banana", 2, models.SlotLunch},
		{"Banana", 10, models.SlotLunch}, // outside the window
	} {
		_, _, err := svc.LogFood(1, FoodLogInput{FoodName: c.food, Date: day(c.ago), MealSlot: c.slot})
		require.NoError(t, err)
	}

	balance, err := svc.WeeklyBalance(1, now)
	require.NoError(t, err)

	assert.Equal(t, 3, balance.MealCount)
	assert.Equal(t, 1, balance.Categories[CategoryCarbs])
	assert.Equal(t, 1, balance.Categories[CategoryDairy])
	assert.Equal(t, 1, balance.Categories[CategoryFruitVeg])
	assert.Equal(t, "Vitamin C", balance.MissingNutrient) // iron + calcium covered
}
