package models

import "time"

// ResetToken is a single-use password reset token sent by email.
type ResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt int64

	// UsedAt is 0 until the token is redeemed.
	UsedAt int64

	CreatedAt int64
}

// Used reports whether the token was already redeemed.
func (t *ResetToken) Used() bool {
	return t.UsedAt != 0
}

// Expired reports whether the token is past its expiry at now.
func (t *ResetToken) Expired(now time.Time) bool {
	return now.Unix() > t.ExpiresAt
}
