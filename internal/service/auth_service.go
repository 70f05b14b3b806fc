package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/calculator"
	"github.com/mmynk/healthcoach/internal/mailer"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
	"github.com/mmynk/healthcoach/pkg/api"
)

// resetPath is the front-end route that consumes reset links.
const resetPath = "/reset-password/confirm"

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	resetTokens   *auth.ResetTokens
	users         storage.UserStore
	jwtManager    *auth.JWTManager
	mailer        mailer.Mailer
	appURL        string
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	authenticator auth.Authenticator,
	resetTokens *auth.ResetTokens,
	users storage.UserStore,
	jwtManager *auth.JWTManager,
	m mailer.Mailer,
	appURL string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		resetTokens:   resetTokens,
		users:         users,
		jwtManager:    jwtManager,
		mailer:        m,
		appURL:        strings.TrimRight(appURL, "/"),
		logger:        logger,
	}
}

// Register creates an account with a temporary password and emails it.
// The caller must log in with that password and then change it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	user, password, err := s.authenticator.Provision(ctx, req.Msg.Email, req.Msg.DisplayName, "")
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrInvalidEmail):
			return nil, invalidArgument(err)
		}
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("registration failed"))
	}

	s.send(ctx, mailer.KindWelcome, req.Msg.Locale, user, mailer.Data{Password: password})

	s.logger.Info("User registered successfully", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user)}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, invalidArgument(auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// ChangePassword replaces the caller's password and clears the
// must-change flag.
func (s *AuthService) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authenticator.ChangePassword(ctx, userID, req.Msg.Password); err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, invalidArgument(err)
		}
		return nil, storeError(s.logger, "ChangePassword", err)
	}

	s.logger.Info("Password changed", "user_id", userID)
	return connect.NewResponse(&api.ChangePasswordResponse{}), nil
}

// RequestPasswordReset emails a reset link when the address belongs to an
// account. The response is identical either way.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req *connect.Request[api.RequestPasswordResetRequest]) (*connect.Response[api.RequestPasswordResetResponse], error) {
	resp := connect.NewResponse(&api.RequestPasswordResetResponse{})

	user, err := s.users.GetUserByEmail(ctx, auth.NormalizeEmail(req.Msg.Email))
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("Password reset requested for unknown email")
		return resp, nil
	}
	if err != nil {
		return nil, storeError(s.logger, "RequestPasswordReset", err)
	}

	token, err := s.resetTokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, storeError(s.logger, "RequestPasswordReset", err)
	}

	link := s.appURL + resetPath + "?token=" + url.QueryEscape(token.Token)
	s.send(ctx, mailer.KindResetLink, req.Msg.Locale, user, mailer.Data{Link: link})

	s.logger.Info("Password reset link issued", "user_id", user.ID)
	return resp, nil
}

// ConfirmPasswordReset redeems a reset token and emails a new temporary
// password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req *connect.Request[api.ConfirmPasswordResetRequest]) (*connect.Response[api.ConfirmPasswordResetResponse], error) {
	token, err := s.resetTokens.Redeem(ctx, req.Msg.Token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) || errors.Is(err, auth.ErrTokenUsed) || errors.Is(err, auth.ErrTokenExpired) {
			s.logger.Warn("Password reset rejected", "reason", err.Error())
			return nil, invalidArgument(err)
		}
		return nil, storeError(s.logger, "ConfirmPasswordReset", err)
	}

	password, err := s.authenticator.ResetPassword(ctx, token.UserID)
	if err != nil {
		return nil, storeError(s.logger, "ConfirmPasswordReset", err)
	}

	user, err := s.users.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, storeError(s.logger, "ConfirmPasswordReset", err)
	}
	s.send(ctx, mailer.KindTemporaryPassword, req.Msg.Locale, user, mailer.Data{Password: password})

	s.logger.Info("Password reset confirmed", "user_id", user.ID)
	return connect.NewResponse(&api.ConfirmPasswordResetResponse{}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		return nil, storeError(s.logger, "GetCurrentUser", err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

// send composes and delivers an email. Delivery failures are logged; the
// account change they describe has already happened.
func (s *AuthService) send(ctx context.Context, kind mailer.Kind, locale string, user *models.User, data mailer.Data) {
	deliver(ctx, s.mailer, s.logger, kind, locale, user, s.appURL, data)
}

func deliver(ctx context.Context, m mailer.Mailer, logger *slog.Logger, kind mailer.Kind, locale string, user *models.User, appURL string, data mailer.Data) {
	data.Name = user.DisplayName
	data.Email = user.Email
	data.AppURL = appURL

	msg, err := mailer.Compose(kind, calculator.ParseLocale(locale), user.Email, data)
	if err != nil {
		logger.Error("Failed to compose email", "kind", kind, "error", err)
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := m.Send(sendCtx, msg); err != nil {
		logger.Error("Failed to send email", "kind", kind, "user_id", user.ID, "error", err)
	}
}
