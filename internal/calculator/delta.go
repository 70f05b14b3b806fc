package calculator

import "fmt"

// Delta compares one field between two samples.
type Delta struct {
	Value       float64
	Neutral     bool
	Improvement bool
	Formatted   string
}

// MetricDelta returns current - previous and whether that change is an
// improvement given the caller's direction. ok is false when either value
// is absent.
func MetricDelta(current, previous Optional, positiveGood bool) (Delta, bool) {
	cur, ok := current.Get()
	if !ok {
		return Delta{}, false
	}
	prev, ok := previous.Get()
	if !ok {
		return Delta{}, false
	}

	d := cur - prev
	neutral := d == 0
	improvement := false
	if !neutral {
		if positiveGood {
			improvement = d > 0
		} else {
			improvement = d < 0
		}
	}

	sign := ""
	if d > 0 {
		sign = "+"
	}

	return Delta{
		Value:       d,
		Neutral:     neutral,
		Improvement: improvement,
		Formatted:   fmt.Sprintf("%s%.2f", sign, d),
	}, true
}

// Measurement is one body-composition sample as seen by the engine.
type Measurement struct {
	WeightKg            float64
	BodyFat             Optional
	Water               Optional
	Protein             Optional
	MuscleKg            Optional
	BoneMassKg          Optional
	BasalMetabolismKcal Optional
	VisceralFat         Optional
}

// TrackedField describes a field shown in trend comparisons.
type TrackedField struct {
	Field        string
	Unit         string
	PositiveGood bool
	value        func(m Measurement) Optional
}

// TrackedFields is the per-field direction table used by trend views.
var TrackedFields = []TrackedField{
	{"weight", "kg", false, weightOf},
	{"body_fat", "%", false, func(m Measurement) Optional { return m.BodyFat }},
	{"water", "%", true, func(m Measurement) Optional { return m.Water }},
	{"muscle", "kg", true, func(m Measurement) Optional { return m.MuscleKg }},
	{"protein", "%", true, func(m Measurement) Optional { return m.Protein }},
	{"visceral_fat", "", false, func(m Measurement) Optional { return m.VisceralFat }},
}

// weightOf reports a non-positive weight as absent. Samples whose payload
// could not be read carry zero weight.
func weightOf(m Measurement) Optional {
	if m.WeightKg <= 0 {
		return None()
	}
	return Some(m.WeightKg)
}

// FieldDelta is a Delta tagged with its field.
type FieldDelta struct {
	Field string
	Unit  string
	Delta
}

// CompareSamples computes deltas for every tracked field present in both
// samples, in TrackedFields order.
func CompareSamples(current, previous Measurement) []FieldDelta {
	var out []FieldDelta
	for _, f := range TrackedFields {
		d, ok := MetricDelta(f.value(current), f.value(previous), f.PositiveGood)
		if !ok {
			continue
		}
		out = append(out, FieldDelta{Field: f.Field, Unit: f.Unit, Delta: d})
	}
	return out
}
