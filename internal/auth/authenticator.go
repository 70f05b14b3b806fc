package auth

import (
	"context"

	"github.com/mmynk/healthcoach/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// Services depend on it rather than on the password implementation so the
// credential mechanism can change without touching the RPC layer.
type Authenticator interface {
	// Provision creates an account that must change its password on first
	// login, generating the password when none is given. The password in
	// effect is returned so it can be delivered to the user.
	Provision(ctx context.Context, email, displayName, password string) (*models.User, string, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ChangePassword sets a user-chosen password and clears the
	// default-password flag.
	ChangePassword(ctx context.Context, userID, credential string) error

	// ResetPassword replaces the password with a generated one and marks
	// it as default. The new password is returned.
	ResetPassword(ctx context.Context, userID string) (string, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
