package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
)

// CreateResetToken persists a new password reset token.
func (s *SQLiteStore) CreateResetToken(ctx context.Context, token *models.ResetToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt == 0 {
		token.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}
	return nil
}

// GetResetToken looks a token up by its value.
func (s *SQLiteStore) GetResetToken(ctx context.Context, value string) (*models.ResetToken, error) {
	token := &models.ResetToken{}
	var usedAt sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, expires_at, used_at, created_at
		 FROM password_reset_tokens WHERE token = ?`,
		value,
	).Scan(&token.ID, &token.UserID, &token.Token, &token.ExpiresAt, &usedAt, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reset token: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	if usedAt.Valid {
		token.UsedAt = usedAt.Int64
	}
	return token, nil
}

// MarkResetTokenUsed records redemption of a token.
func (s *SQLiteStore) MarkResetTokenUsed(ctx context.Context, id string, usedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE password_reset_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL",
		usedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return expectOneRow(res, "reset token", id)
}

// PurgeResetTokens removes tokens that can no longer be redeemed.
func (s *SQLiteStore) PurgeResetTokens(ctx context.Context, now int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM password_reset_tokens WHERE used_at IS NOT NULL OR expires_at < ?", now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge reset tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
