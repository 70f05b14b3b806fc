// Package calculator derives health metrics (BMI, body type, body age and
// sample-to-sample deltas) from body-composition measurements.
//
// Every function is pure: no clock, no I/O, no shared state. Callers own
// the precondition checks (see Derive) and pass "today" and the locale in.
package calculator

import "math"

// BMIClass is the WHO weight band of a BMI value.
type BMIClass string

const (
	BMIUnderweight BMIClass = "underweight"
	BMINormal      BMIClass = "normal"
	BMIOverweight  BMIClass = "overweight"
	BMIObese       BMIClass = "obese"
)

// BMIResult holds a rounded BMI and its localized classification.
type BMIResult struct {
	Value          float64
	Class          BMIClass
	Classification string
}

// CalculateBMI computes weight / height(m)^2. The value is rounded to one
// decimal; the band is chosen from the unrounded value.
// heightCm must be > 0, callers treat BMI as unavailable otherwise.
func CalculateBMI(weightKg, heightCm float64, locale Locale) BMIResult {
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	class := classifyBMI(bmi)
	return BMIResult{
		Value:          roundTo(bmi, 1),
		Class:          class,
		Classification: bmiLabel(class, locale),
	}
}

func classifyBMI(bmi float64) BMIClass {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
