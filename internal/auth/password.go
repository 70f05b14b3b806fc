package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
)

// MinPasswordLength is the shortest password accepted from a user.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrForbidden          = errors.New("admin role required")
)

// UserStorage defines the user persistence operations the authenticator needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string, isDefault bool) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy using the given bcrypt cost. Tests use
// bcrypt.MinCost.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	cp := *a
	cp.cost = cost
	return &cp
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail performs a shape check only; delivery proves ownership.
func ValidateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return ErrInvalidEmail
	}
	if !strings.Contains(email[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func (a *PasswordAuthenticator) hash(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Provision creates an account flagged to change its password on first
// login. When password is empty one is generated. The password in effect
// is returned so it can be delivered to the user.
func (a *PasswordAuthenticator) Provision(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	if password == "" {
		generated, err := GeneratePassword()
		if err != nil {
			return nil, "", err
		}
		password = generated
	} else if err := a.ValidateCredential(password); err != nil {
		return nil, "", err
	}

	user, err := a.create(ctx, email, displayName, password, models.RoleUser, true)
	if err != nil {
		return nil, "", err
	}
	return user, password, nil
}

// EnsureAdmin creates an admin account unless the email is already
// registered. created reports whether an account was made.
func (a *PasswordAuthenticator) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	if err := a.ValidateCredential(password); err != nil {
		return false, err
	}
	_, err = a.create(ctx, email, "", password, models.RoleAdmin, false)
	if errors.Is(err, ErrEmailExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *PasswordAuthenticator) create(ctx context.Context, email, displayName, credential string, role models.Role, isDefault bool) (*models.User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingUser, err := a.storage.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := a.hash(credential)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = email[:strings.LastIndex(email, "@")]
	}
	user := models.NewUser(email, displayName, hashedPassword)
	user.Role = role
	user.IsDefaultPassword = isDefault

	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword sets a user-chosen password.
func (a *PasswordAuthenticator) ChangePassword(ctx context.Context, userID, credential string) error {
	if err := a.ValidateCredential(credential); err != nil {
		return err
	}
	hashed, err := a.hash(credential)
	if err != nil {
		return err
	}
	return a.storage.UpdatePassword(ctx, userID, hashed, false)
}

// ResetPassword assigns a generated password flagged as default.
func (a *PasswordAuthenticator) ResetPassword(ctx context.Context, userID string) (string, error) {
	password, err := GeneratePassword()
	if err != nil {
		return "", err
	}
	hashed, err := a.hash(password)
	if err != nil {
		return "", err
	}
	if err := a.storage.UpdatePassword(ctx, userID, hashed, true); err != nil {
		return "", err
	}
	return password, nil
}
