package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/pkg/api"
)

var resetLinkToken = regexp.MustCompile(`token=([0-9a-f]{64})`)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:  "  Ana@Example.com ",
		Locale: "en",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	user := resp.Msg.User
	if user.Email != "ana@example.com" {
		t.Errorf("email: expected normalized address, got %q", user.Email)
	}
	if !user.MustChangePassword {
		t.Error("expected self-registered user to be flagged for password change")
	}
	if user.Role != "user" {
		t.Errorf("role: expected user, got %q", user.Role)
	}

	sent := env.mail.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	if sent[0].To != "ana@example.com" || sent[0].Subject != "Welcome to Health Coach!" {
		t.Errorf("unexpected welcome email: to=%q subject=%q", sent[0].To, sent[0].Subject)
	}

	password := env.authn.password("ana@example.com")
	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "ana@example.com",
		Password: password,
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.Token == "" {
		t.Error("expected a session token")
	}
	if !login.Msg.User.MustChangePassword {
		t.Error("expected must_change_password after first login")
	}

	_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "ana@example.com"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "not-an-email"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.newUser(t, "bia@example.com")

	_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "bia@example.com", Password: "wrong-password"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "nobody@example.com", Password: "whatever1"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "bia@example.com"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestChangePassword(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	_, token := env.newUser(t, "caio@example.com")

	_, err := env.auth.ChangePassword(ctx, connect.NewRequest(&api.ChangePasswordRequest{Password: "new-password"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.ChangePassword(ctx, authed(&api.ChangePasswordRequest{Password: "short"}, token))
	assertCode(t, err, connect.CodeInvalidArgument)

	if _, err := env.auth.ChangePassword(ctx, authed(&api.ChangePasswordRequest{Password: "new-password"}, token)); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "caio@example.com", Password: "new-password"}))
	if err != nil {
		t.Fatalf("Login with new password failed: %v", err)
	}
	if login.Msg.User.MustChangePassword {
		t.Error("expected must_change_password to be cleared")
	}
}

func TestGetCurrentUser(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	user, token := env.newUser(t, "duda@example.com")

	resp, err := env.auth.GetCurrentUser(ctx, authed(&api.GetCurrentUserRequest{}, token))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if resp.Msg.User.ID != user.ID || resp.Msg.User.DisplayName != "duda" {
		t.Errorf("unexpected user: %+v", resp.Msg.User)
	}

	_, err = env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.GetCurrentUser(ctx, authed(&api.GetCurrentUserRequest{}, "garbage"))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestPasswordResetFlow(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	user, token := env.newUser(t, "eva@example.com")
	if _, err := env.auth.ChangePassword(ctx, authed(&api.ChangePasswordRequest{Password: "chosen-password"}, token)); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	// Unknown addresses get the same answer and no email.
	if _, err := env.auth.RequestPasswordReset(ctx, connect.NewRequest(&api.RequestPasswordResetRequest{Email: "ghost@example.com"})); err != nil {
		t.Fatalf("RequestPasswordReset for unknown email failed: %v", err)
	}
	if n := len(env.mail.messages()); n != 0 {
		t.Fatalf("expected no email for unknown address, got %d", n)
	}

	if _, err := env.auth.RequestPasswordReset(ctx, connect.NewRequest(&api.RequestPasswordResetRequest{Email: "EVA@example.com"})); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	sent := env.mail.messages()
	if len(sent) != 1 {
		t.Fatalf("expected reset email, got %d messages", len(sent))
	}
	if !strings.Contains(sent[0].HTML, "https://app.example.com/reset-password/confirm?token=") {
		t.Errorf("reset link missing from email body")
	}
	match := resetLinkToken.FindStringSubmatch(sent[0].HTML)
	if match == nil {
		t.Fatal("no token in reset email")
	}
	resetToken := match[1]

	if _, err := env.auth.ConfirmPasswordReset(ctx, connect.NewRequest(&api.ConfirmPasswordResetRequest{Token: resetToken})); err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}
	if n := len(env.mail.messages()); n != 2 {
		t.Fatalf("expected temporary password email, got %d messages", n)
	}

	stored, err := env.store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if !stored.IsDefaultPassword {
		t.Error("expected default-password flag after reset")
	}
	if _, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "eva@example.com", Password: "chosen-password"})); err == nil {
		t.Error("old password still works after reset")
	}
	if _, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "eva@example.com", Password: env.authn.password("eva@example.com")})); err != nil {
		t.Errorf("temporary password rejected: %v", err)
	}

	_, err = env.auth.ConfirmPasswordReset(ctx, connect.NewRequest(&api.ConfirmPasswordResetRequest{Token: resetToken}))
	assertCode(t, err, connect.CodeInvalidArgument)
	if !strings.Contains(err.Error(), "TOKEN_USED") {
		t.Errorf("expected TOKEN_USED, got %v", err)
	}
}

func TestConfirmPasswordReset_InvalidTokens(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
	}{
		{"too short", "abc"},
		{"too long", strings.Repeat("a", 129)},
		{"unknown", strings.Repeat("b", 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.ConfirmPasswordReset(ctx, connect.NewRequest(&api.ConfirmPasswordResetRequest{Token: tt.token}))
			assertCode(t, err, connect.CodeInvalidArgument)
			if !strings.Contains(err.Error(), "TOKEN_INVALID") {
				t.Errorf("expected TOKEN_INVALID, got %v", err)
			}
		})
	}
}

func TestConfirmPasswordReset_RateLimitedPerToken(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	token := strings.Repeat("c", 64)

	for i := 0; i < 5; i++ {
		_, err := env.auth.ConfirmPasswordReset(ctx, connect.NewRequest(&api.ConfirmPasswordResetRequest{Token: token}))
		assertCode(t, err, connect.CodeInvalidArgument)
	}

	_, err := env.auth.ConfirmPasswordReset(ctx, connect.NewRequest(&api.ConfirmPasswordResetRequest{Token: token}))
	assertCode(t, err, connect.CodeResourceExhausted)

	// Other tokens keep their own allowance.
	_, err = env.auth.ConfirmPasswordReset(ctx, connect.NewRequest(&api.ConfirmPasswordResetRequest{Token: strings.Repeat("d", 64)}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
