package api

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale,omitempty"`
}

// RegisterResponse does not carry a session; the temporary password is
// delivered by email.
type RegisterResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

type ChangePasswordResponse struct{}

type RequestPasswordResetRequest struct {
	Email  string `json:"email"`
	Locale string `json:"locale,omitempty"`
}

type RequestPasswordResetResponse struct{}

type ConfirmPasswordResetRequest struct {
	Token  string `json:"token"`
	Locale string `json:"locale,omitempty"`
}

type ConfirmPasswordResetResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
