package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAge_ExactMonths(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for n := 0; n <= 24; n++ {
		birth := now.AddDate(0, -n, 0)
		age, err := ClassifyAge(birth, now, false)
		require.NoError(t, err)

		assert.Equal(t, n, age.TotalMonths, "N=%d", n)
		assert.Equal(t, 0, age.Days, "N=%d", n)

		var want Stage
		switch {
		case n < 6:
			want = StageTooYoung
		case n == 6:
			want = StageSixMonths
		case n <= 8:
			want = StageSevenEight
		case n <= 11:
			want = StageNineEleven
		default:
			want = StageTwelvePlus
		}
		assert.Equal(t, want, age.Stage, "N=%d", n)
	}
}

func TestClassifyAge_DayBorrow(t *testing.T) {
	birth := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	age, err := ClassifyAge(birth, now, false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, age.Years, 0)
	assert.GreaterOrEqual(t, age.Months, 0)
	assert.GreaterOrEqual(t, age.Days, 0)
	assert.Equal(t, age.Years*12+age.Months, age.TotalMonths)
	assert.Equal(t, StageTooYoung, age.Stage)
}

func TestClassifyAge_YearBorrow(t *testing.T) {
	birth := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	age, err := ClassifyAge(birth, now, false)
	require.NoError(t, err)

	assert.Equal(t, 0, age.Years)
	assert.Equal(t, 3, age.Months)
	assert.GreaterOrEqual(t, age.Days, 0)
}

func TestClassifyAge_EarlyStartApproval(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	birth := now.AddDate(0, -5, 0)

	age, err := ClassifyAge(birth, now, false)
	require.NoError(t, err)
	assert.Equal(t, StageTooYoung, age.Stage)

	approved, err := ClassifyAge(birth, now, true)
	require.NoError(t, err)
	assert.Equal(t, StageSixMonths, approved.Stage)

	// the flag never touches an already-old-enough child
	older, err := ClassifyAge(now.AddDate(0, -9, 0), now, true)
	require.NoError(t, err)
	assert.Equal(t, StageNineEleven, older.Stage)
}

func TestClassifyAge_FutureBirthDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := ClassifyAge(now.AddDate(0, 1, 0), now, false)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPartitionStageFoods(t *testing.T) {
	plan := PartitionStageFoods(StageSixMonths, []string{"Banana", "Avocado", "Mango"})

	assert.Equal(t, []string{"Banana", "Avocado"}, plan.Tried)
	assert.NotContains(t, plan.ToTry, "Banana")
	assert.Contains(t, plan.ToTry, "Oatmeal")
	assert.Equal(t, 2, plan.TriedCount)
	assert.Equal(t, len(StageFoods(StageSixMonths)), plan.TotalCount)
}

func TestPartitionStageFoods_CaseSensitive(t *testing.T) {
	// membership is an exact match against the list's spelling
	plan := PartitionStageFoods(StageSixMonths, []string{"banana", "AVOCADO"})
	assert.Empty(t, plan.Tried)
}

func TestPartitionStageFoods_TooYoungHasNoList(t *testing.T) {
	plan := PartitionStageFoods(StageTooYoung, []string{"Banana"})
	assert.Empty(t, plan.Tried)
	assert.Empty(t, plan.ToTry)
	assert.Equal(t, 0, plan.TotalCount)
}
