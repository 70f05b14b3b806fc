package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
)

type stubSealer struct {
	sealErr error
}

func (s stubSealer) Seal(p []byte) (string, error) {
	if s.sealErr != nil {
		return "", s.sealErr
	}
	return string(p), nil
}

func (stubSealer) Open(e string) ([]byte, error) { return []byte(e), nil }

func newMockStore(t *testing.T, sealer Sealer) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db, sealer), mock
}

func TestCreateSample_UniqueViolationMapsToConflict(t *testing.T) {
	store, mock := newMockStore(t, stubSealer{})

	mock.ExpectExec("INSERT INTO health_records").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: health_records.user_id, health_records.record_date (2067)"))

	err := store.CreateSample(context.Background(), &models.Sample{UserID: "u1", RecordDate: "2024-01-01", WeightKg: 70})
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSample_DriverErrorIsWrapped(t *testing.T) {
	store, mock := newMockStore(t, stubSealer{})
	boom := errors.New("disk I/O error")

	mock.ExpectExec("INSERT INTO health_records").WillReturnError(boom)

	err := store.CreateSample(context.Background(), &models.Sample{UserID: "u1", RecordDate: "2024-01-01", WeightKg: 70})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, storage.ErrConflict)
}

func TestCreateSample_SealFailureSkipsInsert(t *testing.T) {
	boom := errors.New("no entropy")
	store, mock := newMockStore(t, stubSealer{sealErr: boom})

	err := store.CreateSample(context.Background(), &models.Sample{UserID: "u1", RecordDate: "2024-01-01", WeightKg: 70})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NoRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t, stubSealer{})

	mock.ExpectExec("DELETE FROM users").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteUser(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeResetTokens_ReturnsAffectedRows(t *testing.T) {
	store, mock := newMockStore(t, stubSealer{})

	mock.ExpectExec("DELETE FROM password_reset_tokens").
		WithArgs(int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.PurgeResetTokens(context.Background(), 1700000000)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
