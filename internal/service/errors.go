package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/middleware"
	"github.com/mmynk/healthcoach/internal/storage"
)

// errDuplicateDate is the message clients match on when a user already has
// a record for the requested day.
var errDuplicateDate = errors.New("health_records_user_date_unique")

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// storeError translates a storage failure, logging anything unexpected.
func storeError(logger *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	logger.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

// callerID returns the authenticated user or Unauthenticated.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
