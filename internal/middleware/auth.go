package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/models"
)

type claimsKey struct{}

// ClaimsFrom returns the session claims placed on ctx by the auth
// interceptors, or nil for anonymous requests.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// WithClaims returns a context carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetUserID returns the caller's user ID, or "" for anonymous requests.
func GetUserID(ctx context.Context) string {
	if c := ClaimsFrom(ctx); c != nil {
		return c.UserID
	}
	return ""
}

// GetRole returns the caller's role, or "".
func GetRole(ctx context.Context) models.Role {
	if c := ClaimsFrom(ctx); c != nil {
		return c.Role
	}
	return ""
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
// The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth rejects requests without a valid session token and puts the
// session claims on the handler's context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithClaims(ctx, claims), req)
		}
	}
}

// OptionalAuth attaches claims when a valid token is sent and otherwise
// lets the request through anonymously. Handlers that need a caller check
// GetUserID themselves.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithClaims(ctx, claims)
				}
			}
			return next(ctx, req)
		}
	}
}

// RequireAdmin rejects callers without the admin role. It must run after
// RequireAuth.
func RequireAdmin() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if GetUserID(ctx) == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}
			if GetRole(ctx) != models.RoleAdmin {
				return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
			}
			return next(ctx, req)
		}
	}
}
