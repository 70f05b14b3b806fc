package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/healthcoach/internal/calculator"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/pkg/api"
)

const (
	maxWeightKg = 500
	maxHeightCm = 300
)

var (
	errMissingID     = errors.New("id is required")
	errInvalidDate   = errors.New("date must be YYYY-MM-DD")
	errFutureDate    = errors.New("date cannot be in the future")
	errInvalidWeight = fmt.Errorf("weight must be greater than 0 and at most %d kg", maxWeightKg)
	errInvalidHeight = fmt.Errorf("height must be greater than 0 and at most %d cm", maxHeightCm)
	errInvalidGender = errors.New("gender must be male, female or other")
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:                 u.ID,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		Role:               string(u.Role),
		MustChangePassword: u.IsDefaultPassword,
		HeightCm:           u.HeightCm,
		BirthDate:          u.BirthDate,
		Gender:             string(u.Gender),
		CreatedAt:          u.CreatedAt,
	}
}

func toAPIUsers(users []*models.User) []*api.User {
	out := make([]*api.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	return out
}

func toAPIMeasurements(s *models.Sample) api.Measurements {
	return api.Measurements{
		Weight:          s.WeightKg,
		BodyFat:         s.BodyFat,
		Water:           s.Water,
		Protein:         s.Protein,
		Muscle:          s.MuscleKg,
		BoneMass:        s.BoneMassKg,
		BasalMetabolism: s.BasalMetabolismKcal,
		VisceralFat:     s.VisceralFat,
	}
}

// applyMeasurements copies m into s after validating ranges.
func applyMeasurements(s *models.Sample, m api.Measurements) error {
	if err := validateMeasurements(m); err != nil {
		return err
	}
	s.WeightKg = m.Weight
	s.BodyFat = m.BodyFat
	s.Water = m.Water
	s.Protein = m.Protein
	s.MuscleKg = m.Muscle
	s.BoneMassKg = m.BoneMass
	s.BasalMetabolismKcal = m.BasalMetabolism
	s.VisceralFat = m.VisceralFat
	return nil
}

func validateMeasurements(m api.Measurements) error {
	if m.Weight <= 0 || m.Weight > maxWeightKg {
		return errInvalidWeight
	}
	percentages := []struct {
		name  string
		value *float64
	}{
		{"body_fat", m.BodyFat},
		{"water", m.Water},
		{"protein", m.Protein},
	}
	for _, p := range percentages {
		if p.value != nil && (*p.value < 0 || *p.value > 100) {
			return fmt.Errorf("%s must be between 0 and 100", p.name)
		}
	}
	amounts := []struct {
		name  string
		value *float64
	}{
		{"muscle", m.Muscle},
		{"bone_mass", m.BoneMass},
		{"basal_metabolism", m.BasalMetabolism},
		{"visceral_fat", m.VisceralFat},
	}
	for _, a := range amounts {
		if a.value != nil && *a.value < 0 {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}
	return nil
}

// validateDate checks a YYYY-MM-DD date that must not be after today.
func validateDate(value string, today time.Time) error {
	t, err := models.ParseDate(value)
	if err != nil {
		return errInvalidDate
	}
	if t.After(today) {
		return errFutureDate
	}
	return nil
}

func validateProfile(p api.Profile, today time.Time) error {
	if p.HeightCm != nil && (*p.HeightCm <= 0 || *p.HeightCm > maxHeightCm) {
		return errInvalidHeight
	}
	if p.BirthDate != nil {
		if err := validateDate(*p.BirthDate, today); err != nil {
			return fmt.Errorf("birth_date: %w", err)
		}
	}
	if !models.Gender(p.Gender).Valid() {
		return errInvalidGender
	}
	return nil
}

// dateOf truncates t to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func measurementOf(m api.Measurements) calculator.Measurement {
	return calculator.Measurement{
		WeightKg:            m.Weight,
		BodyFat:             calculator.FromPtr(m.BodyFat),
		Water:               calculator.FromPtr(m.Water),
		Protein:             calculator.FromPtr(m.Protein),
		MuscleKg:            calculator.FromPtr(m.Muscle),
		BoneMassKg:          calculator.FromPtr(m.BoneMass),
		BasalMetabolismKcal: calculator.FromPtr(m.BasalMetabolism),
		VisceralFat:         calculator.FromPtr(m.VisceralFat),
	}
}

func sampleMeasurement(s *models.Sample) calculator.Measurement {
	return measurementOf(toAPIMeasurements(s))
}

func subjectOf(p api.Profile) calculator.Subject {
	subject := calculator.Subject{HeightCm: calculator.FromPtr(p.HeightCm)}
	if p.BirthDate != nil {
		if birth, err := models.ParseDate(*p.BirthDate); err == nil {
			subject.BirthDate = &birth
		}
	}
	return subject
}

func userSubject(u *models.User) calculator.Subject {
	return subjectOf(api.Profile{HeightCm: u.HeightCm, BirthDate: u.BirthDate})
}

func toAPIMetrics(d calculator.Derived) *api.DerivedMetrics {
	out := &api.DerivedMetrics{Age: d.Age, BodyAge: d.BodyAge}
	if d.BMI != nil {
		out.BMI = &api.BMI{
			Value:          d.BMI.Value,
			Class:          string(d.BMI.Class),
			Classification: d.BMI.Classification,
		}
	}
	if d.BodyType != nil {
		out.BodyType = &api.BodyType{
			Type:        string(d.BodyType.Type),
			Name:        d.BodyType.Name,
			Description: d.BodyType.Description,
		}
	}
	return out
}

// recordView renders samples together with the metrics derived for their
// owner's current profile.
type recordView struct {
	subject calculator.Subject
	today   time.Time
	locale  calculator.Locale
}

func newRecordView(owner *models.User, today time.Time, locale string) recordView {
	return recordView{
		subject: userSubject(owner),
		today:   today,
		locale:  calculator.ParseLocale(locale),
	}
}

func (v recordView) derive(s *models.Sample) calculator.Derived {
	return calculator.Derive(sampleMeasurement(s), v.subject, v.today, v.locale)
}

func (v recordView) record(s *models.Sample) *api.Record {
	return &api.Record{
		ID:           s.ID,
		RecordDate:   s.RecordDate,
		Measurements: toAPIMeasurements(s),
		CreatedAt:    s.CreatedAt,
		Metrics:      toAPIMetrics(v.derive(s)),
	}
}

func (v recordView) records(samples []*models.Sample) []*api.Record {
	out := make([]*api.Record, 0, len(samples))
	for _, s := range samples {
		out = append(out, v.record(s))
	}
	return out
}

func toAPIDeltas(deltas []calculator.FieldDelta) []*api.Delta {
	out := make([]*api.Delta, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, &api.Delta{
			Field:       d.Field,
			Unit:        d.Unit,
			Value:       d.Value,
			Formatted:   d.Formatted,
			Neutral:     d.Neutral,
			Improvement: d.Improvement,
		})
	}
	return out
}

func toAPIAssessment(a *models.Assessment) *api.Assessment {
	return &api.Assessment{
		Positives:   nonNil(a.Positives),
		Negatives:   nonNil(a.Negatives),
		Cautions:    nonNil(a.Cautions),
		Suggestions: nonNil(a.Suggestions),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
