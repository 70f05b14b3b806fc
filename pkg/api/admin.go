package api

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

// CreateUserRequest provisions a regular account. When Password is empty a
// temporary one is generated. Either way the password is emailed and must
// be changed on first login. Weight, when set, becomes the
// first record dated today.
type CreateUserRequest struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name,omitempty"`
	Password    string   `json:"password,omitempty"`
	BirthDate   *string  `json:"birth_date,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Locale      string   `json:"locale,omitempty"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

type DeleteUserResponse struct{}

// ResetUserPasswordRequest identifies the user by ID or email.
type ResetUserPasswordRequest struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Locale string `json:"locale,omitempty"`
}

type ResetUserPasswordResponse struct{}

type GetUserRecordsRequest struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year,omitempty"`
	Locale string `json:"locale,omitempty"`
}

type GetUserRecordsResponse struct {
	User    *User     `json:"user"`
	Records []*Record `json:"records"`
}
