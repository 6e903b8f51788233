package services

import (
	"sort"
	"strings"
	"time"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
)

// Coarse category buckets for the weekly balance dashboard.
type Category string

const (
	CategoryCarbs    Category = "Carbs"
	CategoryProtein  Category = "Protein"
	CategoryFruitVeg Category = "FruitVeg"
	CategoryDairy    Category = "Dairy"
)

// Critical nutrients checked in priority order; the first one absent from
// the week's intake becomes the missing-nutrient signal.
var nutrientPriority = []string{"Iron", "Calcium", "Vitamin C", "Omega-3", "Protein"}

// NoNutrientMissing is the sentinel when every critical nutrient was seen.
const NoNutrientMissing = "none"

// WeeklyBalance summarizes the trailing 7-day food log window.
type WeeklyBalance struct {
	MealCount       int              `json:"meal_count"` // distinct (date, meal slot) pairs
	Categories      map[Category]int `json:"categories"`
	Colors          []string         `json:"colors"`    // distinct, sorted
	Nutrients       []string         `json:"nutrients"` // distinct, sorted
	MissingNutrient string           `json:"missing_nutrient"`
}

// FoodLookup resolves a food name to its category, color, and nutrient
// tags. Keys are held normalized; lookups normalize once rather than
// retrying spelling variants at each call site.
type FoodLookup struct {
	categories map[string]Category
	colors     map[string]string
	nutrients  map[string][]string
}

// NormalizeFoodKey folds the pluralization/case disagreements between
// logged food names and the lookup tables: trim, uppercase, strip one
// trailing S.
func NormalizeFoodKey(name string) string {
	key := strings.ToUpper(strings.TrimSpace(name))
	switch {
	case len(key) > 3 && strings.HasSuffix(key, "IES"):
		key = strings.TrimSuffix(key, "IES") + "Y"
	case len(key) > 1 && strings.HasSuffix(key, "S") && !strings.HasSuffix(key, "SS"):
		key = strings.TrimSuffix(key, "S")
	}
	return key
}

func NewFoodLookup(categories map[string]Category, colors map[string]string, nutrients map[string][]string) FoodLookup {
	l := FoodLookup{
		categories: make(map[string]Category, len(categories)),
		colors:     make(map[string]string, len(colors)),
		nutrients:  make(map[string][]string, len(nutrients)),
	}
	for name, c := range categories {
		l.categories[NormalizeFoodKey(name)] = c
	}
	for name, c := range colors {
		l.colors[NormalizeFoodKey(name)] = c
	}
	for name, n := range nutrients {
		l.nutrients[NormalizeFoodKey(name)] = n
	}
	return l
}

// Category returns the bucket for a food. Unknown foods fall back to
// Carbs — a documented default, not an error.
func (l FoodLookup) Category(name string) Category {
	if c, ok := l.categories[NormalizeFoodKey(name)]; ok {
		return c
	}
	return CategoryCarbs
}

func (l FoodLookup) Color(name string) (string, bool) {
	c, ok := l.colors[NormalizeFoodKey(name)]
	return c, ok
}

func (l FoodLookup) Nutrients(name string) []string {
	return l.nutrients[NormalizeFoodKey(name)]
}

// ComputeWeeklyBalance derives the balance dashboard from raw logs. Pure:
// deterministic for identical inputs and now, order-independent, never
// mutates its inputs. The window is inclusive of the date exactly 7 days
// before now.
func ComputeWeeklyBalance(logs []models.TriedFoodLog, now time.Time, lookup FoodLookup) WeeklyBalance {
	cutoff := dayStart(now).AddDate(0, 0, -7)

	out := WeeklyBalance{
		Categories: map[Category]int{
			CategoryCarbs:    0,
			CategoryProtein:  0,
			CategoryFruitVeg: 0,
			CategoryDairy:    0,
		},
	}

	meals := map[string]struct{}{}
	colors := map[string]struct{}{}
	nutrients := map[string]struct{}{}

	for _, log := range logs {
		if dayStart(log.Date).Before(cutoff) {
			continue
		}

		// a log without a slot still contributes its own (date, "") key
		meals[log.Date.Format("2006-01-02")+"|"+log.MealSlot] = struct{}{}

		out.Categories[lookup.Category(log.FoodName)]++

		if c, ok := lookup.Color(log.FoodName); ok {
			colors[c] = struct{}{}
		}
		for _, n := range lookup.Nutrients(log.FoodName) {
			nutrients[n] = struct{}{}
		}
	}

	out.MealCount = len(meals)
	out.Colors = sortedKeys(colors)
	out.Nutrients = sortedKeys(nutrients)

	out.MissingNutrient = NoNutrientMissing
	for _, n := range nutrientPriority {
		if _, ok := nutrients[n]; !ok {
			out.MissingNutrient = n
			break
		}
	}

	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
