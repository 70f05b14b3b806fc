package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
)

// seal serializes and encrypts the measurement fields of a sample.
func (s *SQLiteStore) seal(sample *models.Sample) (string, error) {
	plain, err := json.Marshal(sample.Measurements())
	if err != nil {
		return "", fmt.Errorf("failed to encode measurements: %w", err)
	}
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt measurements: %w", err)
	}
	return sealed, nil
}

// open decrypts a stored payload into sample. Rows that cannot be opened
// are kept with empty measurements rather than failing the whole read.
func (s *SQLiteStore) open(sample *models.Sample, encrypted string) {
	plain, err := s.sealer.Open(encrypted)
	if err != nil {
		s.logger.Warn("Failed to decrypt health record", "record_id", sample.ID, "error", err)
		return
	}
	var m models.Measurements
	if err := json.Unmarshal(plain, &m); err != nil {
		s.logger.Warn("Failed to decode health record", "record_id", sample.ID, "error", err)
		return
	}
	sample.SetMeasurements(m)
}

// CreateSample persists a new sample with its measurements encrypted.
func (s *SQLiteStore) CreateSample(ctx context.Context, sample *models.Sample) error {
	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}
	if sample.CreatedAt == 0 {
		sample.CreatedAt = time.Now().Unix()
	}

	encrypted, err := s.seal(sample)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO health_records (id, user_id, record_date, encrypted_data, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sample.ID, sample.UserID, sample.RecordDate, encrypted, sample.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("record on %s: %w", sample.RecordDate, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert health record: %w", err)
	}

	return nil
}

// UpdateSample rewrites the date and measurements of a sample owned by
// sample.UserID.
func (s *SQLiteStore) UpdateSample(ctx context.Context, sample *models.Sample) error {
	encrypted, err := s.seal(sample)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE health_records SET record_date = ?, encrypted_data = ?
		 WHERE id = ? AND user_id = ?`,
		sample.RecordDate, encrypted, sample.ID, sample.UserID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("record on %s: %w", sample.RecordDate, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update health record: %w", err)
	}
	if err := expectOneRow(res, "health record", sample.ID); err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT created_at FROM health_records WHERE id = ?", sample.ID,
	).Scan(&sample.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to reload health record: %w", err)
	}
	return nil
}

// GetSample retrieves one sample owned by userID.
func (s *SQLiteStore) GetSample(ctx context.Context, userID, sampleID string) (*models.Sample, error) {
	sample := &models.Sample{}
	var encrypted string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, record_date, encrypted_data, created_at
		 FROM health_records WHERE id = ? AND user_id = ?`,
		sampleID, userID,
	).Scan(&sample.ID, &sample.UserID, &sample.RecordDate, &encrypted, &sample.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("health record %s: %w", sampleID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}

	s.open(sample, encrypted)
	return sample, nil
}

// ListSamples returns a user's samples, newest first, optionally limited
// to one calendar year.
func (s *SQLiteStore) ListSamples(ctx context.Context, userID string, year int) ([]*models.Sample, error) {
	query := `SELECT id, user_id, record_date, encrypted_data, created_at
		 FROM health_records WHERE user_id = ?`
	args := []any{userID}
	if year > 0 {
		query += " AND substr(record_date, 1, 4) = ?"
		args = append(args, strconv.Itoa(year))
	}
	query += " ORDER BY record_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}
	defer rows.Close()

	var samples []*models.Sample
	for rows.Next() {
		sample := &models.Sample{}
		var encrypted string
		if err := rows.Scan(&sample.ID, &sample.UserID, &sample.RecordDate, &encrypted, &sample.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan health record: %w", err)
		}
		s.open(sample, encrypted)
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health records: %w", err)
	}

	return samples, nil
}

// DeleteSample removes a sample owned by userID and returns its date.
func (s *SQLiteStore) DeleteSample(ctx context.Context, userID, sampleID string) (string, error) {
	var recordDate string
	err := s.db.QueryRowContext(ctx,
		"DELETE FROM health_records WHERE id = ? AND user_id = ? RETURNING record_date",
		sampleID, userID,
	).Scan(&recordDate)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("health record %s: %w", sampleID, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete health record: %w", err)
	}
	return recordDate, nil
}

// ListSampleYears returns the distinct years a user has samples for.
func (s *SQLiteStore) ListSampleYears(ctx context.Context, userID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT CAST(substr(record_date, 1, 4) AS INTEGER) AS year
		 FROM health_records WHERE user_id = ? ORDER BY year DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list record years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate years: %w", err)
	}
	return years, nil
}

// CountInactiveUsers counts users whose most recent sample is older than
// cutoff. Users without samples are not counted.
func (s *SQLiteStore) CountInactiveUsers(ctx context.Context, cutoff string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (
		   SELECT user_id FROM health_records GROUP BY user_id HAVING MAX(record_date) < ?
		 )`,
		cutoff,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count inactive users: %w", err)
	}
	return n, nil
}
