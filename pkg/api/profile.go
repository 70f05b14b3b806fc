package api

type GetProfileRequest struct{}

type GetProfileResponse struct {
	User *User `json:"user"`
}

// UpdateProfileRequest replaces every editable field. Omitted height or
// birth date clear the stored value.
type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	BirthDate   *string  `json:"birth_date,omitempty"`
	Gender      string   `json:"gender,omitempty"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}
