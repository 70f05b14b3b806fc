package calculator

import (
	"math"
	"testing"
)

func TestMetricDelta(t *testing.T) {
	tests := []struct {
		name            string
		current         Optional
		previous        Optional
		positiveGood    bool
		wantOK          bool
		wantValue       float64
		wantNeutral     bool
		wantImprovement bool
		wantFormatted   string
	}{
		{"no change", Some(70), Some(70), true, true, 0, true, false, "0.00"},
		{"weight up, down is good", Some(72), Some(70), false, true, 2, false, false, "+2.00"},
		{"weight down, down is good", Some(68), Some(70), false, true, -2, false, true, "-2.00"},
		{"muscle up, up is good", Some(31.5), Some(30), true, true, 1.5, false, true, "+1.50"},
		{"zero is a real value", Some(0), Some(1), false, true, -1, false, true, "-1.00"},
		{"current missing", None(), Some(70), true, false, 0, false, false, ""},
		{"previous missing", Some(70), None(), true, false, 0, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MetricDelta(tt.current, tt.previous, tt.positiveGood)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.Value-tt.wantValue) > 1e-9 {
				t.Errorf("Value = %v, want %v", got.Value, tt.wantValue)
			}
			if got.Neutral != tt.wantNeutral {
				t.Errorf("Neutral = %v, want %v", got.Neutral, tt.wantNeutral)
			}
			if got.Improvement != tt.wantImprovement {
				t.Errorf("Improvement = %v, want %v", got.Improvement, tt.wantImprovement)
			}
			if got.Formatted != tt.wantFormatted {
				t.Errorf("Formatted = %q, want %q", got.Formatted, tt.wantFormatted)
			}
		})
	}
}

func TestCompareSamples(t *testing.T) {
	current := Measurement{WeightKg: 68, BodyFat: Some(20), MuscleKg: Some(31), VisceralFat: Some(0)}
	previous := Measurement{WeightKg: 70, BodyFat: Some(22), MuscleKg: Some(30), Water: Some(55)}

	got := CompareSamples(current, previous)

	fields := make(map[string]FieldDelta)
	for _, d := range got {
		fields[d.Field] = d
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 deltas (weight, body_fat, muscle), got %d: %+v", len(got), got)
	}
	for _, name := range []string{"weight", "body_fat", "muscle"} {
		d, ok := fields[name]
		if !ok {
			t.Errorf("missing delta for %s", name)
			continue
		}
		if !d.Improvement {
			t.Errorf("%s: expected improvement, got %+v", name, d)
		}
	}
	if got[0].Field != "weight" {
		t.Errorf("expected weight first, got %s", got[0].Field)
	}
}

func TestCompareSamples_UnreadableWeightIsSkipped(t *testing.T) {
	current := Measurement{WeightKg: 68, BodyFat: Some(20)}
	unreadable := Measurement{}

	for _, d := range CompareSamples(current, unreadable) {
		if d.Field == "weight" {
			t.Fatalf("expected no weight delta against a zero weight, got %+v", d)
		}
	}
	for _, d := range CompareSamples(unreadable, current) {
		if d.Field == "weight" {
			t.Fatalf("expected no weight delta from a zero weight, got %+v", d)
		}
	}
}
