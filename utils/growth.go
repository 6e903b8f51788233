package utils

import "errors"

// CalculateBMI expects height in centimeters and weight in kilograms.
// Plausibility ranges cover infants through preschoolers.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 40 || heightCm > 130 || weightKg < 2 || weightKg > 40 {
		return 0, errors.New("height/weight out of plausible range for a young child")
	}

	h := heightCm / 100.0 // to meters
	bmi := weightKg / (h * h)
	return bmi, nil
}
