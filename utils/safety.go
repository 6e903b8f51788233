package utils

import (
	"fmt"
	"strings"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding you can show in your API / UI.
type Warning struct {
	Code      string          `json:"code"`
	Severity  WarningSeverity `json:"severity"`
	Message   string          `json:"message"`
	Reference string          `json:"reference,omitempty"`
}

// Age limits in months for the rule table below.
const (
	honeyMinMonths    = 12
	cowMilkMinMonths  = 12
	chokingMinMonths  = 48
	allergenMinMonths = 6
)

var honeyFoods = []string{"honey", "honeycomb"}

var cowMilkDrinks = []string{"cow milk", "cows milk", "cow's milk", "whole milk"}

// Whole/hard foods that stay choking hazards well past infancy.
var chokingHazards = []string{
	"whole nut", "whole nuts", "peanut", "peanuts", "almond", "almonds",
	"whole grape", "whole grapes", "grape", "grapes",
	"popcorn", "hard candy", "cherry tomato", "cherry tomatoes",
	"hot dog", "raw carrot",
}

// Common allergens worth an informational flag on first introduction.
var commonAllergens = []string{
	"egg", "eggs", "peanut butter", "tree nut butter", "fish", "shellfish",
	"wheat", "soy", "sesame", "yogurt", "cheese",
}

var highMercuryFish = []string{"shark", "swordfish", "king mackerel", "tilefish", "bigeye tuna"}

// AssessInfantFoodSafety flags foods unsuitable for a child of the given
// age in months. Rules only fire on a match; an empty slice means no
// findings, not "verified safe".
func AssessInfantFoodSafety(foodName string, ageMonths int) []Warning {
	warnings := []Warning{}
	name := strings.ToLower(strings.TrimSpace(foodName))
	if name == "" {
		return warnings
	}

	if ageMonths < honeyMinMonths && containsAny(name, honeyFoods) {
		warnings = append(warnings, Warning{
			Code:      "honey_under_12m",
			Severity:  High,
			Message:   "Honey must not be given before 12 months (infant botulism risk).",
			Reference: "AAP",
		})
	}

	if ageMonths < cowMilkMinMonths && containsAny(name, cowMilkDrinks) {
		warnings = append(warnings, Warning{
			Code:      "cow_milk_under_12m",
			Severity:  Caution,
			Message:   "Cow's milk as a drink is not recommended before 12 months; small amounts in cooking are fine.",
			Reference: "AAP",
		})
	}

	if ageMonths < chokingMinMonths && containsAny(name, chokingHazards) {
		warnings = append(warnings, Warning{
			Code:     "choking_hazard",
			Severity: High,
			Message:  fmt.Sprintf("%s is a choking hazard under 4 years; serve mashed, quartered, or as a smooth spread.", foodName),
		})
	}

	if containsAny(name, highMercuryFish) {
		warnings = append(warnings, Warning{
			Code:      "high_mercury_fish",
			Severity:  Caution,
			Message:   fmt.Sprintf("%s is high in mercury; choose low-mercury fish for young children.", foodName),
			Reference: "FDA/EPA fish advice",
		})
	}

	if ageMonths >= allergenMinMonths && containsAny(name, commonAllergens) {
		warnings = append(warnings, Warning{
			Code:     "common_allergen",
			Severity: Info,
			Message:  fmt.Sprintf("%s is a common allergen; introduce in a small amount and watch for a reaction.", foodName),
		})
	}

	return warnings
}

// WarningMessages keeps the simple strings-only shape for callers that
// store warnings as text.
func WarningMessages(ws []Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Message)
	}
	return out
}

func containsAny(name string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}
