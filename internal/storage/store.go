// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/healthcoach/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible
	// to the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness rule is violated
	// (duplicate email, second sample for the same day).
	ErrConflict = errors.New("conflict")
)

// UserStore persists accounts and profiles.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateProfile writes display name, height, birth date and gender.
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdatePassword replaces the hash and the default-password flag.
	UpdatePassword(ctx context.Context, userID, passwordHash string, isDefault bool) error

	// DeleteUser removes the account and everything it owns.
	DeleteUser(ctx context.Context, id string) error
}

// SampleStore persists body-composition samples, encrypted at rest.
// Every method is scoped to the owning user.
type SampleStore interface {
	// CreateSample assigns ID and CreatedAt when unset.
	// Returns ErrConflict if the user already has a sample on that date.
	CreateSample(ctx context.Context, sample *models.Sample) error

	// UpdateSample returns ErrNotFound if the sample does not belong to
	// sample.UserID, and ErrConflict on a date clash.
	UpdateSample(ctx context.Context, sample *models.Sample) error

	GetSample(ctx context.Context, userID, sampleID string) (*models.Sample, error)

	// ListSamples returns samples newest first. year 0 means all years.
	ListSamples(ctx context.Context, userID string, year int) ([]*models.Sample, error)

	// DeleteSample returns the record date of the deleted sample.
	DeleteSample(ctx context.Context, userID, sampleID string) (string, error)

	// ListSampleYears returns the distinct years with samples, newest first.
	ListSampleYears(ctx context.Context, userID string) ([]int, error)

	// CountInactiveUsers counts users whose latest sample is before cutoff
	// (YYYY-MM-DD).
	CountInactiveUsers(ctx context.Context, cutoff string) (int, error)
}

// ResetTokenStore persists password reset tokens.
type ResetTokenStore interface {
	CreateResetToken(ctx context.Context, token *models.ResetToken) error
	GetResetToken(ctx context.Context, token string) (*models.ResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id string, usedAt int64) error

	// PurgeResetTokens deletes used tokens and tokens expired before now.
	PurgeResetTokens(ctx context.Context, now int64) (int64, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	SampleStore
	ResetTokenStore

	// Close releases any resources held by the store.
	Close() error
}
