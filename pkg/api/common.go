package api

// User is the public view of an account.
type User struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email"`
	DisplayName        string   `json:"display_name"`
	Role               string   `json:"role"`
	MustChangePassword bool     `json:"must_change_password"`
	HeightCm           *float64 `json:"height_cm,omitempty"`
	BirthDate          *string  `json:"birth_date,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	CreatedAt          int64    `json:"created_at"`
}

// Measurements are the values read from a bioimpedance scale. Only
// Weight is required; absent optionals are omitted, never zero.
type Measurements struct {
	Weight          float64  `json:"weight"`
	BodyFat         *float64 `json:"body_fat,omitempty"`
	Water           *float64 `json:"water,omitempty"`
	Protein         *float64 `json:"protein,omitempty"`
	Muscle          *float64 `json:"muscle,omitempty"`
	BoneMass        *float64 `json:"bone_mass,omitempty"`
	BasalMetabolism *float64 `json:"basal_metabolism,omitempty"`
	VisceralFat     *float64 `json:"visceral_fat,omitempty"`
}

// Profile carries the subject attributes the derived metrics depend on.
type Profile struct {
	HeightCm  *float64 `json:"height_cm,omitempty"`
	BirthDate *string  `json:"birth_date,omitempty"`
	Gender    string   `json:"gender,omitempty"`
}

// BMI is a body mass index with its category.
type BMI struct {
	Value          float64 `json:"value"`
	Class          string  `json:"class"`
	Classification string  `json:"classification"`
}

// BodyType is a body-composition category with localized text.
type BodyType struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DerivedMetrics are computed from a sample and the owner's profile.
// A nil field could not be computed from the available inputs.
type DerivedMetrics struct {
	Age      *int      `json:"age,omitempty"`
	BMI      *BMI      `json:"bmi,omitempty"`
	BodyType *BodyType `json:"body_type,omitempty"`
	BodyAge  *int      `json:"body_age,omitempty"`
}

// Record is a stored sample.
type Record struct {
	ID         string `json:"id"`
	RecordDate string `json:"record_date"`
	Measurements
	CreatedAt int64           `json:"created_at"`
	Metrics   *DerivedMetrics `json:"metrics,omitempty"`
}

// Delta is the change of one tracked field between two samples.
type Delta struct {
	Field       string  `json:"field"`
	Unit        string  `json:"unit"`
	Value       float64 `json:"value"`
	Formatted   string  `json:"formatted"`
	Neutral     bool    `json:"neutral"`
	Improvement bool    `json:"improvement"`
}

// Assessment is the four-category evaluation returned by the AI provider.
type Assessment struct {
	Positives   []string `json:"positives"`
	Negatives   []string `json:"negatives"`
	Cautions    []string `json:"cautions"`
	Suggestions []string `json:"suggestions"`
}
