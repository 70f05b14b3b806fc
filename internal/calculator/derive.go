package calculator

import "time"

// Subject holds the slowly-changing attributes used for derivation.
type Subject struct {
	HeightCm  Optional
	BirthDate *time.Time
}

// Derived is the set of metrics computable for one sample. A nil field
// means the metric is unavailable for lack of input.
type Derived struct {
	Age      *int
	BMI      *BMIResult
	BodyType *BodyTypeResult
	BodyAge  *int
}

// Derive applies the precondition contracts and computes whatever is
// available:
//   - BMI needs a positive weight and height.
//   - Body age needs BMI and a birth date.
//   - Body type needs BMI, body fat and muscle mass.
func Derive(m Measurement, s Subject, today time.Time, locale Locale) Derived {
	var d Derived

	if s.BirthDate != nil {
		age := CalculateAge(*s.BirthDate, today)
		d.Age = &age
	}

	height, ok := s.HeightCm.Get()
	if !ok || height <= 0 || m.WeightKg <= 0 {
		return d
	}

	bmi := CalculateBMI(m.WeightKg, height, locale)
	d.BMI = &bmi

	if d.Age != nil {
		bodyAge := EstimateBodyAge(BodyAgeInput{
			Age:      *d.Age,
			BMI:      bmi.Value,
			BodyFat:  m.BodyFat,
			MuscleKg: m.MuscleKg,
			WeightKg: m.WeightKg,
		})
		d.BodyAge = &bodyAge
	}

	fat, fatOK := m.BodyFat.Get()
	muscle, muscleOK := m.MuscleKg.Get()
	if fatOK && muscleOK {
		age := 0
		if d.Age != nil {
			age = *d.Age
		}
		bt := ClassifyBodyType(BodyTypeInput{
			WeightKg: m.WeightKg,
			HeightCm: height,
			Age:      age,
			BMI:      bmi.Value,
			BodyFat:  fat,
			MuscleKg: muscle,
		}, locale)
		d.BodyType = &bt
	}

	return d
}
