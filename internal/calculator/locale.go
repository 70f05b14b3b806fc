package calculator

import "strings"

// Locale selects the language of labels returned by the engine.
// It never changes thresholds or arithmetic.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// DefaultLocale is used when the caller does not ask for a language.
const DefaultLocale = LocalePT

// ParseLocale maps a language tag ("en", "en-US", "pt-BR", ...) to a
// supported Locale, falling back to DefaultLocale.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch Locale(tag) {
	case LocalePT, LocaleEN, LocaleES:
		return Locale(tag)
	default:
		return DefaultLocale
	}
}

// label is a name/description pair for one category in one language.
type label struct {
	Name        string
	Description string
}

var bmiLabels = map[BMIClass]map[Locale]string{
	BMIUnderweight: {LocalePT: "Abaixo do peso", LocaleEN: "Underweight", LocaleES: "Bajo peso"},
	BMINormal:      {LocalePT: "Peso normal", LocaleEN: "Normal weight", LocaleES: "Peso normal"},
	BMIOverweight:  {LocalePT: "Sobrepeso", LocaleEN: "Overweight", LocaleES: "Sobrepeso"},
	BMIObese:       {LocalePT: "Obeso", LocaleEN: "Obese", LocaleES: "Obeso"},
}

var bodyTypeLabels = map[BodyType]map[Locale]label{
	BodySkinny: {
		LocalePT: {"Magro", "IMC abaixo do peso com baixo percentual de gordura"},
		LocaleEN: {"Skinny", "Underweight BMI with low body fat percentage"},
		LocaleES: {"Delgado", "IMC bajo con bajo porcentaje de grasa"},
	},
	BodySkinnyBalanced: {
		LocalePT: {"Magro Equilibrado", "IMC abaixo do peso com gordura moderada"},
		LocaleEN: {"Skinny-Balanced", "Underweight BMI with moderate body fat"},
		LocaleES: {"Delgado Equilibrado", "IMC bajo con grasa moderada"},
	},
	BodySkinnyMuscular: {
		LocalePT: {"Magro Musculoso", "IMC abaixo do peso com alta massa muscular"},
		LocaleEN: {"Skinny-Muscular", "Underweight BMI with high muscle mass"},
		LocaleES: {"Delgado Musculoso", "IMC bajo con alta masa muscular"},
	},
	BodySkinnyGeneric: {
		LocalePT: {"Magro", "IMC abaixo do peso"},
		LocaleEN: {"Skinny", "Underweight BMI"},
		LocaleES: {"Delgado", "IMC bajo"},
	},
	BodyMuscularBalanced: {
		LocalePT: {"Musculoso Equilibrado", "Ótima composição corporal com baixa gordura e alto músculo"},
		LocaleEN: {"Muscular-Balanced", "Great body composition with low fat and high muscle"},
		LocaleES: {"Musculoso Equilibrado", "Excelente composición corporal con poca grasa y mucho músculo"},
	},
	BodyBalanced: {
		LocalePT: {"Equilibrado", "Composição corporal saudável dentro da normalidade"},
		LocaleEN: {"Balanced", "Healthy body composition within the normal range"},
		LocaleES: {"Equilibrado", "Composición corporal saludable dentro de la normalidad"},
	},
	BodyLackingExercise: {
		LocalePT: {"Falta de Exercício", "Peso normal porém com excesso de gordura e baixa massa muscular"},
		LocaleEN: {"Lacking-Exercise", "Normal weight but with excess fat and low muscle mass"},
		LocaleES: {"Falta de Ejercicio", "Peso normal pero con exceso de grasa y poca masa muscular"},
	},
	BodyThickSet: {
		LocalePT: {"Grosso Conjunto", "Sobrepeso com massa muscular significativa"},
		LocaleEN: {"Thick-Set", "Overweight with significant muscle mass"},
		LocaleES: {"Robusto", "Sobrepeso con masa muscular significativa"},
	},
	BodyOverweight: {
		LocalePT: {"Sobrepeso", "IMC em faixa de sobrepeso com gordura elevada"},
		LocaleEN: {"Overweight", "BMI in the overweight range with high body fat"},
		LocaleES: {"Sobrepeso", "IMC en rango de sobrepeso con grasa elevada"},
	},
	BodyObese: {
		LocalePT: {"Obeso", "IMC em faixa de obesidade, recomenda-se acompanhamento médico"},
		LocaleEN: {"Obese", "BMI in the obese range, medical follow-up is recommended"},
		LocaleES: {"Obeso", "IMC en rango de obesidad, se recomienda seguimiento médico"},
	},
}

func bmiLabel(class BMIClass, locale Locale) string {
	if s, ok := bmiLabels[class][locale]; ok {
		return s
	}
	return bmiLabels[class][DefaultLocale]
}

func bodyTypeLabel(t BodyType, locale Locale) label {
	if l, ok := bodyTypeLabels[t][locale]; ok {
		return l
	}
	return bodyTypeLabels[t][DefaultLocale]
}
