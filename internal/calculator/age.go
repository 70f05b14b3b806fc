package calculator

import (
	"math"
	"time"
)

// CalculateAge returns the number of whole years between birth and today
// (age at last birthday). Future birth dates are not rejected here.
func CalculateAge(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// BodyAgeInput holds the inputs of EstimateBodyAge.
type BodyAgeInput struct {
	Age      int
	BMI      float64
	BodyFat  Optional
	MuscleKg Optional
	WeightKg float64
}

// MinBodyAge is the floor applied to every body-age estimate.
const MinBodyAge = 10

// EstimateBodyAge starts from chronological age and adds independent
// BMI, body-fat and muscle-ratio adjustments. The rounded result never
// goes below MinBodyAge.
func EstimateBodyAge(in BodyAgeInput) int {
	total := float64(in.Age)

	switch {
	case in.BMI > 30:
		total += (in.BMI - 30) * 0.5
	case in.BMI > 25:
		total += (in.BMI - 25) * 0.3
	case in.BMI < 18.5:
		total += (18.5 - in.BMI) * 0.3
	}

	if fat, ok := in.BodyFat.Get(); ok {
		switch {
		case fat > 30:
			total += (fat - 30) * 0.4
		case fat > 25:
			total += (fat - 25) * 0.2
		case fat < 12:
			total -= (12 - fat) * 0.3
		case fat < 18:
			total -= (18 - fat) * 0.2
		}
	}

	if muscle, ok := in.MuscleKg.Get(); ok && in.WeightKg > 0 {
		ratio := muscle / in.WeightKg * 100
		switch {
		case ratio > 45:
			total -= 3
		case ratio > 40:
			total -= 1.5
		}
	}

	rounded := int(math.Round(total))
	if rounded < MinBodyAge {
		return MinBodyAge
	}
	return rounded
}
