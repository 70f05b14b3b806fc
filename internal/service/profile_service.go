package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
	"github.com/mmynk/healthcoach/pkg/api"
)

const maxDisplayNameLength = 100

// ProfileService implements the ProfileService RPC interface.
type ProfileService struct {
	users  storage.UserStore
	logger *slog.Logger
	now    func() time.Time
}

// NewProfileService creates a profile service backed by users.
func NewProfileService(users storage.UserStore, logger *slog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger, now: time.Now}
}

// GetProfile returns the caller's account and profile.
func (s *ProfileService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "GetProfile", err)
	}

	return connect.NewResponse(&api.GetProfileResponse{User: toAPIUser(user)}), nil
}

// UpdateProfile replaces the caller's editable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.DisplayName)
	if name == "" {
		return nil, invalidArgument(errors.New("display_name is required"))
	}
	if len(name) > maxDisplayNameLength {
		return nil, invalidArgument(errors.New("display_name is too long"))
	}
	profile := api.Profile{
		HeightCm:  req.Msg.HeightCm,
		BirthDate: req.Msg.BirthDate,
		Gender:    req.Msg.Gender,
	}
	if err := validateProfile(profile, dateOf(s.now())); err != nil {
		return nil, invalidArgument(err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "UpdateProfile", err)
	}

	user.DisplayName = name
	user.HeightCm = profile.HeightCm
	user.BirthDate = profile.BirthDate
	user.Gender = models.Gender(profile.Gender)

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, storeError(s.logger, "UpdateProfile", err)
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}
