package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/mailer"
	"github.com/mmynk/healthcoach/internal/middleware"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
	"github.com/mmynk/healthcoach/pkg/api"
)

var errSelfDelete = errors.New("admins cannot delete their own account")

// AdminService implements the AdminService RPC interface. Callers are
// checked for the admin role by middleware.RequireAdmin.
type AdminService struct {
	store         storage.Store
	authenticator auth.Authenticator
	mailer        mailer.Mailer
	appURL        string
	logger        *slog.Logger
	now           func() time.Time
}

// NewAdminService creates an admin service.
func NewAdminService(store storage.Store, authenticator auth.Authenticator, m mailer.Mailer, appURL string, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:         store,
		authenticator: authenticator,
		mailer:        m,
		appURL:        strings.TrimRight(appURL, "/"),
		logger:        logger,
		now:           time.Now,
	}
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, storeError(s.logger, "ListUsers", err)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: toAPIUsers(users)}), nil
}

// CreateUser provisions a regular account that must change its password
// on first login. Optional height and birth date fill the profile, and an
// optional weight becomes the first record, dated today.
func (s *AdminService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	s.logger.Info("CreateUser request", "email", req.Msg.Email, "admin_id", middleware.GetUserID(ctx))

	today := dateOf(s.now())
	profile := api.Profile{HeightCm: req.Msg.HeightCm, BirthDate: req.Msg.BirthDate}
	if err := validateProfile(profile, today); err != nil {
		return nil, invalidArgument(err)
	}
	var first *models.Sample
	if req.Msg.Weight != nil {
		first = &models.Sample{RecordDate: today.Format(models.DateLayout)}
		if err := applyMeasurements(first, api.Measurements{Weight: *req.Msg.Weight}); err != nil {
			return nil, invalidArgument(err)
		}
	}

	user, password, err := s.authenticator.Provision(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
			return nil, invalidArgument(err)
		}
		return nil, storeError(s.logger, "CreateUser", err)
	}

	// The account exists from here on; nothing below may prevent the
	// password email.
	if profile.HeightCm != nil || profile.BirthDate != nil {
		user.HeightCm = profile.HeightCm
		user.BirthDate = profile.BirthDate
		if err := s.store.UpdateProfile(ctx, user); err != nil {
			s.logger.Warn("CreateUser: profile not saved", "user_id", user.ID, "error", err)
			user.HeightCm, user.BirthDate = nil, nil
		}
	}
	withRecord := false
	if first != nil {
		first.UserID = user.ID
		if err := s.store.CreateSample(ctx, first); err != nil {
			s.logger.Warn("CreateUser: first record not saved", "user_id", user.ID, "error", err)
		} else {
			withRecord = true
		}
	}

	deliver(ctx, s.mailer, s.logger, mailer.KindWelcome, req.Msg.Locale, user, s.appURL, mailer.Data{Password: password})

	s.logger.Info("User created", "user_id", user.ID, "with_record", withRecord)
	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(user)}), nil
}

// DeleteUser removes an account and all of its records.
func (s *AdminService) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	if req.Msg.UserID == "" {
		return nil, invalidArgument(errMissingID)
	}
	if req.Msg.UserID == middleware.GetUserID(ctx) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errSelfDelete)
	}

	if err := s.store.DeleteUser(ctx, req.Msg.UserID); err != nil {
		return nil, storeError(s.logger, "DeleteUser", err)
	}

	s.logger.Info("User deleted", "user_id", req.Msg.UserID, "admin_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.DeleteUserResponse{}), nil
}

// ResetUserPassword assigns a new temporary password and emails it. An
// unknown user gets the same empty response.
func (s *AdminService) ResetUserPassword(ctx context.Context, req *connect.Request[api.ResetUserPasswordRequest]) (*connect.Response[api.ResetUserPasswordResponse], error) {
	resp := connect.NewResponse(&api.ResetUserPasswordResponse{})

	var (
		user *models.User
		err  error
	)
	switch {
	case req.Msg.UserID != "":
		user, err = s.store.GetUserByID(ctx, req.Msg.UserID)
	case req.Msg.Email != "":
		user, err = s.store.GetUserByEmail(ctx, auth.NormalizeEmail(req.Msg.Email))
	default:
		return nil, invalidArgument(errors.New("user_id or email is required"))
	}
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("Password reset for unknown user ignored")
		return resp, nil
	}
	if err != nil {
		return nil, storeError(s.logger, "ResetUserPassword", err)
	}

	password, err := s.authenticator.ResetPassword(ctx, user.ID)
	if err != nil {
		return nil, storeError(s.logger, "ResetUserPassword", err)
	}
	deliver(ctx, s.mailer, s.logger, mailer.KindTemporaryPassword, req.Msg.Locale, user, s.appURL, mailer.Data{Password: password})

	s.logger.Info("Password reset by admin", "user_id", user.ID, "admin_id", middleware.GetUserID(ctx))
	return resp, nil
}

// GetUserRecords returns another user's profile and records.
func (s *AdminService) GetUserRecords(ctx context.Context, req *connect.Request[api.GetUserRecordsRequest]) (*connect.Response[api.GetUserRecordsResponse], error) {
	if req.Msg.UserID == "" {
		return nil, invalidArgument(errMissingID)
	}

	user, err := s.store.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, storeError(s.logger, "GetUserRecords", err)
	}
	samples, err := s.store.ListSamples(ctx, user.ID, req.Msg.Year)
	if err != nil {
		return nil, storeError(s.logger, "GetUserRecords", err)
	}

	view := newRecordView(user, dateOf(s.now()), req.Msg.Locale)
	return connect.NewResponse(&api.GetUserRecordsResponse{
		User:    toAPIUser(user),
		Records: view.records(samples),
	}), nil
}
