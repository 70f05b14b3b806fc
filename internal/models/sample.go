package models

import "time"

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// InactivityDays is how many days may pass after a user's latest sample
// before the user is considered inactive.
const InactivityDays = 30

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Sample is one dated body-composition measurement.
// A user has at most one sample per RecordDate.
type Sample struct {
	// ID is the unique identifier for the sample (UUID format).
	ID string

	// UserID is the owner.
	UserID string

	// RecordDate is the measurement day (YYYY-MM-DD).
	RecordDate string

	// WeightKg is always present and positive.
	WeightKg float64

	// Percentages in [0, 100].
	BodyFat *float64
	Water   *float64
	Protein *float64

	// Masses in kg.
	MuscleKg   *float64
	BoneMassKg *float64

	BasalMetabolismKcal *float64

	// VisceralFat is a unitless index; 0 is a valid reading.
	VisceralFat *float64

	// CreatedAt is the Unix timestamp when the sample was first saved.
	CreatedAt int64
}

// Measurements is the part of a Sample that is encrypted at rest.
type Measurements struct {
	WeightKg            float64  `json:"weight"`
	BodyFat             *float64 `json:"body_fat"`
	Water               *float64 `json:"water"`
	BasalMetabolismKcal *float64 `json:"basal_metabolism"`
	VisceralFat         *float64 `json:"visceral_fat"`
	MuscleKg            *float64 `json:"muscle"`
	Protein             *float64 `json:"protein"`
	BoneMassKg          *float64 `json:"bone_mass"`
}

// Measurements extracts the sensitive fields.
func (s *Sample) Measurements() Measurements {
	return Measurements{
		WeightKg:            s.WeightKg,
		BodyFat:             s.BodyFat,
		Water:               s.Water,
		BasalMetabolismKcal: s.BasalMetabolismKcal,
		VisceralFat:         s.VisceralFat,
		MuscleKg:            s.MuscleKg,
		Protein:             s.Protein,
		BoneMassKg:          s.BoneMassKg,
	}
}

// SetMeasurements copies decrypted fields back into the sample.
func (s *Sample) SetMeasurements(m Measurements) {
	s.WeightKg = m.WeightKg
	s.BodyFat = m.BodyFat
	s.Water = m.Water
	s.BasalMetabolismKcal = m.BasalMetabolismKcal
	s.VisceralFat = m.VisceralFat
	s.MuscleKg = m.MuscleKg
	s.Protein = m.Protein
	s.BoneMassKg = m.BoneMassKg
}

// Year returns the calendar year of RecordDate, or 0 if it is malformed.
func (s *Sample) Year() int {
	t, err := ParseDate(s.RecordDate)
	if err != nil {
		return 0
	}
	return t.Year()
}
