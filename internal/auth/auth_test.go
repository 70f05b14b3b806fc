package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
)

// memStore is an in-memory UserStorage and ResetTokenStorage.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	tokens map[string]*models.ResetToken
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, tokens: map[string]*models.ResetToken{}}
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return storage.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id, hash string, isDefault bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = hash
	u.IsDefaultPassword = isDefault
	return nil
}

func (m *memStore) CreateResetToken(_ context.Context, t *models.ResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = t.Token[:8]
	}
	cp := *t
	m.tokens[t.Token] = &cp
	return nil
}

func (m *memStore) GetResetToken(_ context.Context, value string) (*models.ResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[value]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) MarkResetTokenUsed(_ context.Context, id string, usedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.ID == id && t.UsedAt == 0 {
			t.UsedAt = usedAt
			return nil
		}
	}
	return storage.ErrNotFound
}

func newTestAuthenticator() (*PasswordAuthenticator, *memStore) {
	store := newMemStore()
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost), store
}

func TestAuthenticate(t *testing.T) {
	a, _ := newTestAuthenticator()
	ctx := context.Background()

	user, _, err := a.Provision(ctx, "  Alice@Example.com ", "Alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	got, err := a.Authenticate(ctx, "ALICE@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvisionValidation(t *testing.T) {
	a, _ := newTestAuthenticator()
	ctx := context.Background()

	_, _, err := a.Provision(ctx, "not-an-email", "Bob", "long-enough")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = a.Provision(ctx, "bob@example.com", "Bob", "long-enough")
	require.NoError(t, err)
	_, _, err = a.Provision(ctx, "BOB@example.com", "Bob", "")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestProvision(t *testing.T) {
	a, _ := newTestAuthenticator()
	ctx := context.Background()

	user, password, err := a.Provision(ctx, "carol@example.com", "", "")
	require.NoError(t, err)
	assert.True(t, user.IsDefaultPassword)
	assert.Equal(t, "carol", user.DisplayName)
	assert.Len(t, password, GeneratedPasswordLength)

	_, err = a.Authenticate(ctx, "carol@example.com", password)
	assert.NoError(t, err)

	given, password, err := a.Provision(ctx, "erin@example.com", "Erin", "chosen-by-admin")
	require.NoError(t, err)
	assert.Equal(t, "chosen-by-admin", password)
	assert.True(t, given.IsDefaultPassword, "admin-chosen passwords must still be changed")

	_, _, err = a.Provision(ctx, "frank@example.com", "", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestEnsureAdmin(t *testing.T) {
	a, store := newTestAuthenticator()
	ctx := context.Background()

	created, err := a.EnsureAdmin(ctx, "root@example.com", "admin-password")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := store.GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.False(t, admin.IsDefaultPassword)

	created, err = a.EnsureAdmin(ctx, "ROOT@example.com", "admin-password")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestChangeAndResetPassword(t *testing.T) {
	a, store := newTestAuthenticator()
	ctx := context.Background()

	user, temp, err := a.Provision(ctx, "dave@example.com", "Dave", "")
	require.NoError(t, err)

	assert.ErrorIs(t, a.ChangePassword(ctx, user.ID, "short"), ErrWeakPassword)
	require.NoError(t, a.ChangePassword(ctx, user.ID, "my-own-password"))

	stored, _ := store.GetUserByID(ctx, user.ID)
	assert.False(t, stored.IsDefaultPassword)
	_, err = a.Authenticate(ctx, "dave@example.com", temp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	fresh, err := a.ResetPassword(ctx, user.ID)
	require.NoError(t, err)
	stored, _ = store.GetUserByID(ctx, user.ID)
	assert.True(t, stored.IsDefaultPassword)
	_, err = a.Authenticate(ctx, "dave@example.com", fresh)
	assert.NoError(t, err)

	_, err = a.ResetPassword(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, p, GeneratedPasswordLength)

		assert.True(t, strings.ContainsAny(p, lowerChars), "no lower-case in %q", p)
		assert.True(t, strings.ContainsAny(p, upperChars), "no upper-case in %q", p)
		assert.True(t, strings.ContainsAny(p, digitChars), "no digit in %q", p)
		assert.True(t, strings.ContainsAny(p, symbolChars), "no symbol in %q", p)
		for _, r := range p {
			assert.True(t, strings.ContainsRune(allChars, r), "unexpected rune %q", r)
		}
		seen[p] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestResetTokens(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewResetTokens(store)
	tokens.now = func() time.Time { return now }

	issued, err := tokens.Issue(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(ResetTokenTTL).Unix(), issued.ExpiresAt)

	t.Run("length bounds", func(t *testing.T) {
		_, err := tokens.Redeem(ctx, "short")
		assert.ErrorIs(t, err, ErrTokenInvalid)
		_, err = tokens.Redeem(ctx, strings.Repeat("a", MaxResetTokenLength+1))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := tokens.Redeem(ctx, strings.Repeat("f", 64))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("single use", func(t *testing.T) {
		redeemed, err := tokens.Redeem(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", redeemed.UserID)

		_, err = tokens.Redeem(ctx, issued.Token)
		assert.ErrorIs(t, err, ErrTokenUsed)
	})

	t.Run("expired", func(t *testing.T) {
		fresh, err := tokens.Issue(ctx, "user-2")
		require.NoError(t, err)

		tokens.now = func() time.Time { return now.Add(ResetTokenTTL + time.Second) }
		defer func() { tokens.now = func() time.Time { return now } }()

		_, err = tokens.Redeem(ctx, fresh.Token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u-1", Email: "admin@example.com", Role: models.RoleAdmin}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	other := NewJWTManager("other-secret", time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager("test-secret", -time.Minute)
	old, err := expired.Generate(user)
	require.NoError(t, err)
	_, err = m.Validate(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Claims(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(&models.User{ID: "u-2", Role: models.RoleUser, IsDefaultPassword: true})
	require.NoError(t, err)
	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.True(t, claims.MustChangePassword)
	assert.Equal(t, "u-2", claims.Subject)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u-2",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "u-2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
