package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
)

var balanceNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func flog(food string, daysAgo int, slot string) models.TriedFoodLog {
	return models.TriedFoodLog{
		FoodName: food,
		Date:     balanceNow.AddDate(0, 0, -daysAgo),
		MealSlot: slot,
	}
}

func TestComputeWeeklyBalance_Empty(t *testing.T) {
	out := ComputeWeeklyBalance(nil, balanceNow, DefaultFoodLookup())

	assert.Equal(t, 0, out.MealCount)
	for _, bucket := range []Category{CategoryCarbs, CategoryProtein, CategoryFruitVeg, CategoryDairy} {
		assert.Equal(t, 0, out.Categories[bucket])
	}
	assert.Empty(t, out.Colors)
	assert.Empty(t, out.Nutrients)
	// nothing consumed → the first priority nutrient is missing
	assert.Equal(t, "Iron", out.MissingNutrient)
}

func TestComputeWeeklyBalance_Buckets(t *testing.T) {
	logs := []models.TriedFoodLog{
		flog("Oatmeal", 0, models.SlotBreakfast),
		flog("Banana", 0, models.SlotBreakfast),
		flog("Chicken", 1, models.SlotLunch),
		flog("Yogurt", 2, models.SlotSnack),
		flog("Mystery food", 3, models.SlotDinner), // unknown → Carbs fallback
	}

	out := ComputeWeeklyBalance(logs, balanceNow, DefaultFoodLookup())

	assert.Equal(t, 2, out.Categories[CategoryCarbs]) // oatmeal + fallback
	assert.Equal(t, 1, out.Categories[CategoryProtein])
	assert.Equal(t, 1, out.Categories[CategoryFruitVeg])
	assert.Equal(t, 1, out.Categories[CategoryDairy])

	// banana and oatmeal share (date, breakfast)
	assert.Equal(t, 4, out.MealCount)

	total := 0
	for _, n := range out.Categories {
		total += n
	}
	assert.Equal(t, len(logs), total)
}

func TestComputeWeeklyBalance_WindowExclusion(t *testing.T) {
	logs := []models.TriedFoodLog{
		flog("Banana", 8, models.SlotBreakfast), // outside
		flog("Banana", 7, models.SlotLunch),     // boundary: included
		flog("Banana", 6, models.SlotDinner),
	}

	out := ComputeWeeklyBalance(logs, balanceNow, DefaultFoodLookup())

	assert.Equal(t, 2, out.MealCount)
	assert.Equal(t, 2, out.Categories[CategoryFruitVeg])
}

func TestComputeWeeklyBalance_OrderIndependent(t *testing.T) {
	logs := []models.TriedFoodLog{
		flog("Oatmeal", 0, models.SlotBreakfast),
		flog("Salmon", 1, models.SlotLunch),
		flog("Yogurt", 2, ""),
		flog("Spinach", 3, models.SlotDinner),
		flog("Banana", 4, models.SlotSnack),
		flog("Banana", 9, models.SlotSnack),
	}

	want := ComputeWeeklyBalance(logs, balanceNow, DefaultFoodLookup())

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.TriedFoodLog, len(logs))
		copy(shuffled, logs)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ComputeWeeklyBalance(shuffled, balanceNow, DefaultFoodLookup())
		require.Equal(t, want, got)
	}
}

func TestComputeWeeklyBalance_EmptySlotKeysByDate(t *testing.T) {
	logs := []models.TriedFoodLog{
		flog("Banana", 0, ""),
		flog("Oatmeal", 0, ""), // same (date, "") key
		flog("Yogurt", 1, ""),
	}

	out := ComputeWeeklyBalance(logs, balanceNow, DefaultFoodLookup())
	assert.Equal(t, 2, out.MealCount)
}

func TestComputeWeeklyBalance_MissingNutrientPriority(t *testing.T) {
	lookup := DefaultFoodLookup()

	// iron covered, calcium not → Calcium is next in priority
	out := ComputeWeeklyBalance([]models.TriedFoodLog{flog("Oatmeal", 0, "")}, balanceNow, lookup)
	assert.Equal(t, "Calcium", out.MissingNutrient)

	// everything covered → sentinel
	out = ComputeWeeklyBalance([]models.TriedFoodLog{
		flog("Lentils", 0, models.SlotLunch), // Iron, Protein
		flog("Yogurt", 0, models.SlotSnack),  // Calcium, Protein
		flog("Strawberry", 1, ""),            // Vitamin C
		flog("Salmon", 2, models.SlotDinner), // Omega-3, Protein
	}, balanceNow, lookup)
	assert.Equal(t, NoNutrientMissing, out.MissingNutrient)
}

func TestComputeWeeklyBalance_NormalizedLookup(t *testing.T) {
	// plural and case differences must resolve to the same table entries
	logs := []models.TriedFoodLog{
		flog("carrots", 0, models.SlotLunch),
		flog("BANANA", 1, models.SlotSnack),
		flog("Blueberries", 2, ""),
	}

	out := ComputeWeeklyBalance(logs, balanceNow, DefaultFoodLookup())

	assert.Equal(t, 3, out.Categories[CategoryFruitVeg])
	assert.ElementsMatch(t, []string{"orange", "yellow", "purple"}, out.Colors)
	assert.Contains(t, out.Nutrients, "Vitamin C")
}

func TestComputeWeeklyBalance_DoesNotMutateInput(t *testing.T) {
	logs := []models.TriedFoodLog{
		flog("Banana", 0, models.SlotBreakfast),
		flog("Oatmeal", 1, models.SlotLunch),
	}
	snapshot := make([]models.TriedFoodLog, len(logs))
	copy(snapshot, logs)

	_ = ComputeWeeklyBalance(logs, balanceNow, DefaultFoodLookup())
	assert.Equal(t, snapshot, logs)
}

func TestNormalizeFoodKey(t *testing.T) {
	assert.Equal(t, "CARROT", NormalizeFoodKey(" carrots "))
	assert.Equal(t, "BANANA", NormalizeFoodKey("Bananas"))
	assert.Equal(t, "PEA", NormalizeFoodKey("Peas"))
	assert.Equal(t, "BLUEBERRY", NormalizeFoodKey("blueberries"))
	// double-S words are not plurals
	assert.Equal(t, "SWISS", NormalizeFoodKey("Swiss"))
	// single letter never strips to nothing
	assert.Equal(t, "S", NormalizeFoodKey("s"))
}
