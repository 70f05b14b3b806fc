package calculator

// BodyType identifies a body-type category independently of language.
type BodyType string

const (
	BodySkinny           BodyType = "skinny"
	BodySkinnyBalanced   BodyType = "skinny_balanced"
	BodySkinnyMuscular   BodyType = "skinny_muscular"
	BodySkinnyGeneric    BodyType = "skinny_generic"
	BodyMuscularBalanced BodyType = "muscular_balanced"
	BodyBalanced         BodyType = "balanced"
	BodyLackingExercise  BodyType = "lacking_exercise"
	BodyThickSet         BodyType = "thick_set"
	BodyOverweight       BodyType = "overweight"
	BodyObese            BodyType = "obese"
)

// BodyTypeInput holds the inputs of ClassifyBodyType.
// HeightCm and Age are accepted for interface stability but do not affect
// the result.
type BodyTypeInput struct {
	WeightKg float64
	HeightCm float64
	Age      int
	BMI      float64
	BodyFat  float64
	MuscleKg float64
}

// BodyTypeResult is a classified body type with localized text.
type BodyTypeResult struct {
	Type        BodyType
	Name        string
	Description string
}

// bodyFactors are the values the rules look at.
type bodyFactors struct {
	bmi         float64
	fat         float64
	muscleRatio float64
	highMuscle  bool
}

type bodyTypeRule struct {
	match  func(f bodyFactors) bool
	result BodyType
}

// bodyTypeRules is evaluated top to bottom, first match wins.
// Band edges are literal: <18.5, <=24.9, <=29.9. A BMI of exactly 25.0
// falls in the overweight band.
var bodyTypeRules = []bodyTypeRule{
	{func(f bodyFactors) bool { return f.bmi < 18.5 && f.fat < 15 }, BodySkinny},
	{func(f bodyFactors) bool { return f.bmi < 18.5 && f.fat <= 20 }, BodySkinnyBalanced},
	{func(f bodyFactors) bool { return f.bmi < 18.5 && f.highMuscle }, BodySkinnyMuscular},
	{func(f bodyFactors) bool { return f.bmi < 18.5 }, BodySkinnyGeneric},

	{func(f bodyFactors) bool { return f.bmi <= 24.9 && f.fat < 18 && f.highMuscle }, BodyMuscularBalanced},
	{func(f bodyFactors) bool { return f.bmi <= 24.9 && f.fat <= 25 }, BodyBalanced},
	{func(f bodyFactors) bool { return f.bmi <= 24.9 }, BodyLackingExercise},

	{func(f bodyFactors) bool { return f.bmi <= 29.9 && f.muscleRatio > 35 }, BodyThickSet},
	{func(f bodyFactors) bool { return f.bmi <= 29.9 }, BodyOverweight},

	{func(bodyFactors) bool { return true }, BodyObese},
}

// ClassifyBodyType maps BMI, body fat and muscle ratio to a body type.
// Body fat and muscle must both be known; callers report "insufficient
// data" instead of calling this with guesses.
func ClassifyBodyType(in BodyTypeInput, locale Locale) BodyTypeResult {
	f := bodyFactors{
		bmi: in.BMI,
		fat: in.BodyFat,
	}
	if in.WeightKg > 0 {
		f.muscleRatio = in.MuscleKg / in.WeightKg * 100
	}
	f.highMuscle = f.muscleRatio > 40

	t := BodyObese
	for _, r := range bodyTypeRules {
		if r.match(f) {
			t = r.result
			break
		}
	}

	l := bodyTypeLabel(t, locale)
	return BodyTypeResult{
		Type:        t,
		Name:        l.Name,
		Description: l.Description,
	}
}
