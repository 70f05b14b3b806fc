package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/healthcoach/internal/models"
)

// sessionIssuer is written to and required in every session token.
const sessionIssuer = "healthcoach"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims identify the account behind a session. MustChangePassword mirrors
// the default-password flag at login time so clients can route straight
// to the change-password screen.
type Claims struct {
	UserID             string      `json:"uid"`
	Email              string      `json:"email"`
	Role               models.Role `json:"role"`
	MustChangePassword bool        `json:"pwd_change,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 session tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWTManager creates a manager whose tokens live for ttl.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(sessionIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(30*time.Second),
		),
		now: time.Now,
	}
}

// Generate issues a session token for user.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	issued := m.now()
	claims := Claims{
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		MustChangePassword: user.IsDefaultPassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature, issuer and expiry and returns the claims.
// Every failure wraps ErrInvalidToken.
func (m *JWTManager) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
