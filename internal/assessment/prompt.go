// Package assessment turns a user's samples and derived metrics into a
// prompt for a chat-completion model and parses the structured answer.
package assessment

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mmynk/healthcoach/internal/calculator"
	"github.com/mmynk/healthcoach/internal/models"
)

// ErrNoData is returned when there is nothing to assess.
var ErrNoData = errors.New("no records to assess")

// ErrUnknownKind is returned for an assessment kind other than latest or general.
var ErrUnknownKind = errors.New("unknown assessment kind")

// Profile is the subject information included in prompts.
type Profile struct {
	Age      *int
	Gender   models.Gender
	HeightCm *float64
}

// Entry is one sample with its derived metrics.
type Entry struct {
	Sample  *models.Sample
	Derived calculator.Derived
}

// Prompt is a system/user message pair.
type Prompt struct {
	System string
	User   string
}

type phrases struct {
	system        string
	age, years    string
	sex           string
	genders       map[models.Gender]string
	height        string
	weight        string
	bmi           string
	bodyAge       string
	bodyType      string
	bodyFat       string
	water         string
	muscle        string
	protein       string
	visceralFat   string
	basal         string
	boneMass      string
	date          string
	patientData   string
	history       string // takes the record count
	first         string
	intermediate  string // takes the position
	latest        string
	latestTask    string
	generalTask   string
	trendRule     string
	rules         []string
	rulesHeader   string
	listPlacehold [4]string
}

var localized = map[calculator.Locale]phrases{
	calculator.LocalePT: {
		system: "Você é um especialista em saúde, nutrição e composição corporal. Analisa dados de bioimpedância e históricos clínicos, fornecendo avaliações claras e práticas em português do Brasil. Sempre responde apenas com JSON válido.",
		age:    "Idade", years: "anos",
		sex:     "Sexo",
		genders: map[models.Gender]string{models.GenderMale: "masculino", models.GenderFemale: "feminino", models.GenderOther: "outro"},
		height:  "Altura", weight: "Peso", bmi: "IMC",
		bodyAge: "Idade corporal estimada", bodyType: "Tipo de corpo",
		bodyFat: "Gordura corporal", water: "Água corporal", muscle: "Massa muscular",
		protein: "Proteína", visceralFat: "Gordura visceral", basal: "Metabolismo basal",
		boneMass: "Massa óssea", date: "Data",
		patientData:  "Dados do paciente:",
		history:      "Histórico de %d registro(s):",
		first:        "Primeiro registro",
		intermediate: "Registro intermediário %d",
		latest:       "Registro mais recente",
		latestTask:   "Com base nesses dados de composição corporal do registro mais recente, forneça uma avaliação de saúde estruturada em JSON:",
		generalTask:  "Com base no histórico completo de registros de composição corporal, forneça uma avaliação da evolução e estado geral de saúde em JSON:",
		trendRule:    "Avalie tendências e evolução ao longo do tempo, não apenas o registro mais recente.",
		rulesHeader:  "Regras:",
		rules: []string{
			"Cada lista deve ter entre 1 e 4 itens relevantes. Se não houver dados suficientes para um campo, retorne lista vazia.",
			"Seja direto, claro e prático. Escreva em português do Brasil.",
			"Baseie-se em referências clínicas (OMS, ACSM). Considere o sexo do paciente nas referências de composição corporal.",
			"Não mencione que é uma IA. Não faça recomendações médicas formais.",
			"Retorne APENAS o JSON, sem texto adicional.",
		},
		listPlacehold: [4]string{"ponto positivo 1", "ponto negativo 1", "ponto de atenção 1", "sugestão 1"},
	},
	calculator.LocaleEN: {
		system: "You are an expert in health, nutrition and body composition. You analyse bioimpedance data and clinical histories and give clear, practical evaluations in English. You always answer with valid JSON only.",
		age:    "Age", years: "years",
		sex:     "Sex",
		genders: map[models.Gender]string{models.GenderMale: "male", models.GenderFemale: "female", models.GenderOther: "other"},
		height:  "Height", weight: "Weight", bmi: "BMI",
		bodyAge: "Estimated body age", bodyType: "Body type",
		bodyFat: "Body fat", water: "Body water", muscle: "Muscle mass",
		protein: "Protein", visceralFat: "Visceral fat", basal: "Basal metabolism",
		boneMass: "Bone mass", date: "Date",
		patientData:  "Patient data:",
		history:      "History of %d record(s):",
		first:        "First record",
		intermediate: "Intermediate record %d",
		latest:       "Most recent record",
		latestTask:   "Based on this body composition data from the most recent record, give a structured health evaluation as JSON:",
		generalTask:  "Based on the full history of body composition records, give an evaluation of the progress and overall health as JSON:",
		trendRule:    "Evaluate trends and progress over time, not only the most recent record.",
		rulesHeader:  "Rules:",
		rules: []string{
			"Each list must have between 1 and 4 relevant items. If there is not enough data for a field, return an empty list.",
			"Be direct, clear and practical. Write in English.",
			"Use clinical references (WHO, ACSM). Take the patient's sex into account for body composition references.",
			"Do not mention being an AI. Do not make formal medical recommendations.",
			"Return ONLY the JSON, with no additional text.",
		},
		listPlacehold: [4]string{"positive point 1", "negative point 1", "point of attention 1", "suggestion 1"},
	},
	calculator.LocaleES: {
		system: "Eres un especialista en salud, nutrición y composición corporal. Analizas datos de bioimpedancia e historiales clínicos y das evaluaciones claras y prácticas en español. Siempre respondes solo con JSON válido.",
		age:    "Edad", years: "años",
		sex:     "Sexo",
		genders: map[models.Gender]string{models.GenderMale: "masculino", models.GenderFemale: "femenino", models.GenderOther: "otro"},
		height:  "Altura", weight: "Peso", bmi: "IMC",
		bodyAge: "Edad corporal estimada", bodyType: "Tipo de cuerpo",
		bodyFat: "Grasa corporal", water: "Agua corporal", muscle: "Masa muscular",
		protein: "Proteína", visceralFat: "Grasa visceral", basal: "Metabolismo basal",
		boneMass: "Masa ósea", date: "Fecha",
		patientData:  "Datos del paciente:",
		history:      "Historial de %d registro(s):",
		first:        "Primer registro",
		intermediate: "Registro intermedio %d",
		latest:       "Registro más reciente",
		latestTask:   "Con base en estos datos de composición corporal del registro más reciente, da una evaluación de salud estructurada en JSON:",
		generalTask:  "Con base en el historial completo de registros de composición corporal, da una evaluación de la evolución y del estado general de salud en JSON:",
		trendRule:    "Evalúa tendencias y evolución a lo largo del tiempo, no solo el registro más reciente.",
		rulesHeader:  "Reglas:",
		rules: []string{
			"Cada lista debe tener entre 1 y 4 elementos relevantes. Si no hay datos suficientes para un campo, devuelve una lista vacía.",
			"Sé directo, claro y práctico. Escribe en español.",
			"Básate en referencias clínicas (OMS, ACSM). Considera el sexo del paciente en las referencias de composición corporal.",
			"No menciones que eres una IA. No hagas recomendaciones médicas formales.",
			"Devuelve SOLO el JSON, sin texto adicional.",
		},
		listPlacehold: [4]string{"punto positivo 1", "punto negativo 1", "punto de atención 1", "sugerencia 1"},
	},
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build assembles the prompt for kind. Entries may be in any order.
func Build(kind models.AssessmentKind, profile Profile, entries []Entry, locale calculator.Locale) (Prompt, error) {
	if len(entries) == 0 {
		return Prompt{}, ErrNoData
	}
	p, ok := localized[locale]
	if !ok {
		p = localized[calculator.DefaultLocale]
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sample.RecordDate < sorted[j].Sample.RecordDate
	})

	var user string
	switch kind {
	case models.AssessLatest:
		user = p.latestPrompt(profile, sorted[len(sorted)-1])
	case models.AssessGeneral:
		user = p.generalPrompt(profile, sorted)
	default:
		return Prompt{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return Prompt{System: p.system, User: user}, nil
}

func (p phrases) profileLines(profile Profile) []string {
	var lines []string
	if profile.Age != nil && *profile.Age > 0 {
		lines = append(lines, fmt.Sprintf("- %s: %d %s", p.age, *profile.Age, p.years))
	}
	if g, ok := p.genders[profile.Gender]; ok {
		lines = append(lines, fmt.Sprintf("- %s: %s", p.sex, g))
	}
	if profile.HeightCm != nil && *profile.HeightCm > 0 {
		lines = append(lines, fmt.Sprintf("- %s: %s cm", p.height, num(*profile.HeightCm)))
	}
	return lines
}

// sampleLines renders the fields of one entry. indent prefixes every
// line; detailed adds body age and bone mass.
func (p phrases) sampleLines(e Entry, indent string, detailed bool) []string {
	s := e.Sample
	var lines []string
	add := func(label, value string) {
		lines = append(lines, fmt.Sprintf("%s%s: %s", indent, label, value))
	}
	opt := func(label string, v *float64, unit string) {
		if v != nil {
			add(label, num(*v)+unit)
		}
	}

	if !detailed {
		add(p.date, s.RecordDate)
	}
	if s.WeightKg > 0 {
		add(p.weight, num(s.WeightKg)+" kg")
	}
	if b := e.Derived.BMI; b != nil && b.Value > 0 {
		add(p.bmi, fmt.Sprintf("%s (%s)", num(b.Value), b.Classification))
	}
	if detailed && e.Derived.BodyAge != nil {
		add(p.bodyAge, fmt.Sprintf("%d %s", *e.Derived.BodyAge, p.years))
	}
	if bt := e.Derived.BodyType; bt != nil {
		add(p.bodyType, bt.Name)
	}
	opt(p.bodyFat, s.BodyFat, "%")
	opt(p.water, s.Water, "%")
	opt(p.muscle, s.MuscleKg, " kg")
	opt(p.protein, s.Protein, "%")
	opt(p.visceralFat, s.VisceralFat, "")
	opt(p.basal, s.BasalMetabolismKcal, " kcal")
	if detailed {
		opt(p.boneMass, s.BoneMassKg, " kg")
	}
	return lines
}

func (p phrases) schema() string {
	return fmt.Sprintf(`{
  "positivos": ["%s", ...],
  "negativos": ["%s", ...],
  "atencao": ["%s", ...],
  "sugestoes": ["%s", ...]
}`, p.listPlacehold[0], p.listPlacehold[1], p.listPlacehold[2], p.listPlacehold[3])
}

func (p phrases) footer(task string, extra ...string) string {
	var b strings.Builder
	b.WriteString(task)
	b.WriteString("\n")
	b.WriteString(p.schema())
	b.WriteString("\n\n")
	b.WriteString(p.rulesHeader)
	for _, r := range append(extra, p.rules...) {
		b.WriteString("\n- ")
		b.WriteString(r)
	}
	return b.String()
}

func (p phrases) latestPrompt(profile Profile, e Entry) string {
	lines := p.profileLines(profile)
	lines = append(lines, p.sampleLines(e, "- ", true)...)
	return strings.Join(lines, "\n") + "\n\n" + p.footer(p.latestTask)
}

func (p phrases) generalPrompt(profile Profile, sorted []Entry) string {
	lines := []string{p.patientData}
	lines = append(lines, p.profileLines(profile)...)
	lines = append(lines, "", fmt.Sprintf(p.history, len(sorted)))

	record := func(label string, e Entry) {
		lines = append(lines, "  "+label+":")
		lines = append(lines, p.sampleLines(e, "    ", false)...)
	}
	record(p.first, sorted[0])
	for i := 1; i < len(sorted)-1; i++ {
		record(fmt.Sprintf(p.intermediate, i), sorted[i])
	}
	if len(sorted) > 1 {
		record(p.latest, sorted[len(sorted)-1])
	}

	return strings.Join(lines, "\n") + "\n\n" + p.footer(p.generalTask, p.trendRule)
}
