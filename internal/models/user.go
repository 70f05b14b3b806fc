package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Gender is used only to pick labels and prompt wording, never formulas.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
)

// Valid reports whether g is one of the known values (or unset).
func (g Gender) Valid() bool {
	switch g {
	case GenderUnknown, GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User represents a registered account together with its health profile.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the login identifier (unique).
	Email string

	// DisplayName is shown in the UI and in emails.
	DisplayName string

	// PasswordHash is the bcrypt hash of the current password.
	PasswordHash string

	// Role controls access to the admin endpoints.
	Role Role

	// IsDefaultPassword is set when the password was generated by the
	// system; the user is asked to change it on next login.
	IsDefaultPassword bool

	// HeightCm is required for BMI and everything derived from it.
	HeightCm *float64

	// BirthDate (YYYY-MM-DD) is required for age and body age.
	BirthDate *string

	Gender Gender

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser creates a new user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Birth parses BirthDate. ok is false when it is unset or malformed.
func (u *User) Birth() (t time.Time, ok bool) {
	if u.BirthDate == nil {
		return time.Time{}, false
	}
	t, err := ParseDate(*u.BirthDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
