package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
)

const (
	// ResetTokenTTL is how long an emailed reset link stays valid.
	ResetTokenTTL = time.Hour

	MinResetTokenLength = 32
	MaxResetTokenLength = 128
)

var (
	ErrTokenInvalid = errors.New("TOKEN_INVALID")
	ErrTokenUsed    = errors.New("TOKEN_USED")
	ErrTokenExpired = errors.New("TOKEN_EXPIRED")
)

// ResetTokenStorage is the persistence the reset flow needs.
type ResetTokenStorage interface {
	CreateResetToken(ctx context.Context, token *models.ResetToken) error
	GetResetToken(ctx context.Context, token string) (*models.ResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id string, usedAt int64) error
}

// ResetTokens issues and redeems single-use password reset tokens.
type ResetTokens struct {
	storage ResetTokenStorage
	ttl     time.Duration
	now     func() time.Time
}

// NewResetTokens creates a reset token issuer with the default TTL.
func NewResetTokens(storage ResetTokenStorage) *ResetTokens {
	return &ResetTokens{storage: storage, ttl: ResetTokenTTL, now: time.Now}
}

// Issue creates and stores a new token for userID.
func (r *ResetTokens) Issue(ctx context.Context, userID string) (*models.ResetToken, error) {
	value, err := GenerateResetToken()
	if err != nil {
		return nil, err
	}
	now := r.now()
	token := &models.ResetToken{
		UserID:    userID,
		Token:     value,
		ExpiresAt: now.Add(r.ttl).Unix(),
		CreatedAt: now.Unix(),
	}
	if err := r.storage.CreateResetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// Redeem validates value and marks it used. Concurrent redemptions of the
// same token race on the store; only one of them succeeds.
func (r *ResetTokens) Redeem(ctx context.Context, value string) (*models.ResetToken, error) {
	if len(value) < MinResetTokenLength || len(value) > MaxResetTokenLength {
		return nil, ErrTokenInvalid
	}

	token, err := r.storage.GetResetToken(ctx, value)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	now := r.now()
	if token.Used() {
		return nil, ErrTokenUsed
	}
	if token.Expired(now) {
		return nil, ErrTokenExpired
	}

	if err := r.storage.MarkResetTokenUsed(ctx, token.ID, now.Unix()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTokenUsed
		}
		return nil, err
	}
	token.UsedAt = now.Unix()
	return token, nil
}
