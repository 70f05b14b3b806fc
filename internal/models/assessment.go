package models

// Assessment is a structured evaluation of a user's body composition.
// Each list holds between zero and four short sentences.
type Assessment struct {
	Positives   []string `json:"positivos"`
	Negatives   []string `json:"negativos"`
	Cautions    []string `json:"atencao"`
	Suggestions []string `json:"sugestoes"`
}

// AssessmentKind selects a single-sample or a whole-history evaluation.
type AssessmentKind string

const (
	AssessLatest  AssessmentKind = "latest"
	AssessGeneral AssessmentKind = "general"
)
