package services

import (
	"fmt"
	"time"
)

// Stage is a discrete age-based food-introduction phase.
type Stage string

const (
	StageTooYoung   Stage = "too_young"
	StageSixMonths  Stage = "6_months"
	StageSevenEight Stage = "7_8_months"
	StageNineEleven Stage = "9_11_months"
	StageTwelvePlus Stage = "12_plus"
)

// AgeBreakdown is the calendar age at "now" plus the resolved stage.
type AgeBreakdown struct {
	Years       int   `json:"years"`
	Months      int   `json:"months"`
	Days        int   `json:"days"`
	TotalMonths int   `json:"total_months"`
	Stage       Stage `json:"stage"`
}

// ClassifyAge computes the calendar difference between birthDate and now
// with day/month borrow, then maps total months to a stage.
// earlyStartApproved lifts an under-6-month child to 6_months behavior;
// it is caller-supplied (pediatrician approval held on the profile), the
// classifier keeps no state of its own.
func ClassifyAge(birthDate, now time.Time, earlyStartApproved bool) (AgeBreakdown, error) {
	if birthDate.After(now) {
		return AgeBreakdown{}, fmt.Errorf("%w: birth date is in the future", ErrInvalidInput)
	}

	years := now.Year() - birthDate.Year()
	months := int(now.Month()) - int(birthDate.Month())
	days := now.Day() - birthDate.Day()

	// Borrow days from the months preceding "now". A single borrow is not
	// always enough: Jan 31 → Mar 1 leaves days negative after borrowing
	// February, so keep borrowing until the day count settles.
	borrowMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for days < 0 {
		borrowMonth = borrowMonth.AddDate(0, -1, 0)
		days += daysInMonth(borrowMonth.Year(), borrowMonth.Month())
		months--
	}
	if months < 0 {
		months += 12
		years--
	}

	total := years*12 + months
	return AgeBreakdown{
		Years:       years,
		Months:      months,
		Days:        days,
		TotalMonths: total,
		Stage:       stageForMonths(total, earlyStartApproved),
	}, nil
}

func stageForMonths(totalMonths int, earlyStartApproved bool) Stage {
	switch {
	case totalMonths < 6:
		if earlyStartApproved {
			return StageSixMonths
		}
		return StageTooYoung
	case totalMonths == 6:
		return StageSixMonths
	case totalMonths <= 8:
		return StageSevenEight
	case totalMonths <= 11:
		return StageNineEleven
	default:
		return StageTwelvePlus
	}
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Recommended foods per stage. StageTooYoung has no list: nothing is
// recommended before solids start.
var stageFoods = map[Stage][]string{
	StageSixMonths: {
		"Oatmeal", "Rice cereal", "Banana", "Avocado", "Sweet potato",
		"Carrot", "Pea", "Apple", "Pear", "Pumpkin",
	},
	StageSevenEight: {
		"Oatmeal", "Lentils", "Egg", "Chicken", "Yogurt",
		"Broccoli", "Spinach", "Blueberry", "Mango", "Tofu", "Zucchini",
	},
	StageNineEleven: {
		"Beans", "Beef", "Turkey", "Salmon", "Cheese",
		"Pasta", "Quinoa", "Strawberry", "Cottage cheese", "Bread",
	},
	StageTwelvePlus: {
		"Egg", "Salmon", "Beans", "Cheese", "Pasta",
		"Strawberry", "Blueberry", "Chicken", "Quinoa", "Broccoli",
	},
}

// StageFoods returns the fixed recommendation list for a stage.
func StageFoods(stage Stage) []string {
	foods := stageFoods[stage]
	out := make([]string, len(foods))
	copy(out, foods)
	return out
}

// StagePlan partitions a stage's food list into already tried vs to try.
type StagePlan struct {
	Stage      Stage    `json:"stage"`
	Tried      []string `json:"tried"`
	ToTry      []string `json:"to_try"`
	TriedCount int      `json:"tried_count"`
	TotalCount int      `json:"total_count"`
}

// PartitionStageFoods splits the stage list using the logged food names.
// Membership is a case-sensitive exact match against the list's spelling.
func PartitionStageFoods(stage Stage, triedNames []string) StagePlan {
	tried := make(map[string]struct{}, len(triedNames))
	for _, n := range triedNames {
		tried[n] = struct{}{}
	}

	plan := StagePlan{Stage: stage, Tried: []string{}, ToTry: []string{}}
	for _, food := range stageFoods[stage] {
		if _, ok := tried[food]; ok {
			plan.Tried = append(plan.Tried, food)
		} else {
			plan.ToTry = append(plan.ToTry, food)
		}
	}
	plan.TriedCount = len(plan.Tried)
	plan.TotalCount = plan.TriedCount + len(plan.ToTry)
	return plan
}
