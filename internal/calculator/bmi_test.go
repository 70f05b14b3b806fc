package calculator

import (
	"math"
	"testing"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		height    float64
		wantValue float64
		wantClass BMIClass
	}{
		{"underweight just below threshold", 73.9, 200, 18.5, BMIUnderweight},
		{"exactly 18.5 is normal", 74, 200, 18.5, BMINormal},
		{"normal", 68, 170, 23.5, BMINormal},
		{"exactly 25.0 is overweight", 100, 200, 25.0, BMIOverweight},
		{"overweight", 85, 175, 27.8, BMIOverweight},
		{"exactly 30.0 is obese", 120, 200, 30.0, BMIObese},
		{"obese", 110, 170, 38.1, BMIObese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBMI(tt.weight, tt.height, LocaleEN)
			if math.Abs(got.Value-tt.wantValue) > 1e-9 {
				t.Errorf("CalculateBMI(%v, %v).Value = %v, want %v", tt.weight, tt.height, got.Value, tt.wantValue)
			}
			if got.Class != tt.wantClass {
				t.Errorf("CalculateBMI(%v, %v).Class = %v, want %v", tt.weight, tt.height, got.Class, tt.wantClass)
			}
		})
	}
}

func TestCalculateBMI_ClassUsesUnroundedValue(t *testing.T) {
	// 24.96 rounds to 25.0 but is still below 25.
	height := 200.0
	weight := 24.96 * 4

	got := CalculateBMI(weight, height, LocaleEN)
	if got.Value != 25.0 {
		t.Fatalf("Value = %v, want 25.0", got.Value)
	}
	if got.Class != BMINormal {
		t.Errorf("Class = %v, want %v", got.Class, BMINormal)
	}
}

func TestCalculateBMI_Labels(t *testing.T) {
	tests := []struct {
		locale Locale
		want   string
	}{
		{LocaleEN, "Normal weight"},
		{LocalePT, "Peso normal"},
		{LocaleES, "Peso normal"},
		{Locale("fr"), "Peso normal"},
	}

	for _, tt := range tests {
		t.Run(string(tt.locale), func(t *testing.T) {
			got := CalculateBMI(68, 170, tt.locale)
			if got.Classification != tt.want {
				t.Errorf("Classification = %q, want %q", got.Classification, tt.want)
			}
		})
	}
}

func TestParseLocale(t *testing.T) {
	tests := map[string]Locale{
		"en":    LocaleEN,
		"en-US": LocaleEN,
		"pt_BR": LocalePT,
		"ES":    LocaleES,
		"":      LocalePT,
		"de":    LocalePT,
	}
	for in, want := range tests {
		if got := ParseLocale(in); got != want {
			t.Errorf("ParseLocale(%q) = %v, want %v", in, got, want)
		}
	}
}
