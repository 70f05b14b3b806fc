package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/healthcoach/internal/assessment"
	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/encryption"
	"github.com/mmynk/healthcoach/internal/events"
	"github.com/mmynk/healthcoach/internal/mailer"
	"github.com/mmynk/healthcoach/internal/middleware"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage/sqlite"
	"github.com/mmynk/healthcoach/pkg/api/apiconnect"
)

// fixedNow is the clock every test service runs on.
var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// contextWithUser is the context RequireAuth hands to a handler.
func contextWithUser(userID string) context.Context {
	return middleware.WithClaims(context.Background(), &auth.Claims{UserID: userID, Role: models.RoleUser})
}

// captureMailer records every message sent.
type captureMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *captureMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

// recordingAuthenticator remembers the last password handed out per email.
type recordingAuthenticator struct {
	auth.Authenticator
	users interface {
		GetUserByID(ctx context.Context, id string) (*models.User, error)
	}

	mu        sync.Mutex
	passwords map[string]string
}

func (a *recordingAuthenticator) Provision(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	user, pw, err := a.Authenticator.Provision(ctx, email, displayName, password)
	if err == nil {
		a.remember(user.Email, pw)
	}
	return user, pw, err
}

func (a *recordingAuthenticator) ResetPassword(ctx context.Context, userID string) (string, error) {
	pw, err := a.Authenticator.ResetPassword(ctx, userID)
	if err != nil {
		return "", err
	}
	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	a.remember(user.Email, pw)
	return pw, nil
}

func (a *recordingAuthenticator) remember(email, pw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.passwords[email] = pw
}

func (a *recordingAuthenticator) password(email string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.passwords[email]
}

// fakeAssessor returns a canned result and keeps the last prompt.
type fakeAssessor struct {
	mu     sync.Mutex
	prompt assessment.Prompt
	result *models.Assessment
	err    error
}

func (f *fakeAssessor) Evaluate(_ context.Context, prompt assessment.Prompt) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompt = prompt
	return f.result, f.err
}

// eventRecorder collects published events.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) Publish(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

type testEnv struct {
	store    *sqlite.SQLiteStore
	authn    *recordingAuthenticator
	jwt      *auth.JWTManager
	mail     *captureMailer
	assessor *fakeAssessor
	events   *eventRecorder

	auth       apiconnect.AuthServiceClient
	profile    apiconnect.ProfileServiceClient
	records    apiconnect.RecordServiceClient
	metrics    apiconnect.MetricsServiceClient
	assessment apiconnect.AssessmentServiceClient
	admin      apiconnect.AdminServiceClient
}

// setupTestServer serves every service over httptest against a temp
// SQLite database, with the same interceptor chains as production.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	sealer, err := encryption.NewSealer("service-test-secret")
	if err != nil {
		t.Fatalf("failed to create sealer: %v", err)
	}
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), sealer)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := discardLogger()
	env := &testEnv{
		store: store,
		authn: &recordingAuthenticator{
			Authenticator: auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
			users:         store,
			passwords:     map[string]string{},
		},
		jwt:      auth.NewJWTManager("service-test-jwt", time.Hour),
		mail:     &captureMailer{},
		assessor: &fakeAssessor{},
		events:   &eventRecorder{},
	}

	h := Handlers{
		Auth:       NewAuthService(env.authn, auth.NewResetTokens(store), store, env.jwt, env.mail, "https://app.example.com/", logger),
		Profile:    NewProfileService(store, logger),
		Records:    NewRecordService(store, env.events, logger),
		Metrics:    NewMetricsService(logger),
		Assessment: NewAssessmentService(store, env.assessor, logger),
		Admin:      NewAdminService(store, env.authn, env.mail, "https://app.example.com", logger),
	}
	clock := func() time.Time { return fixedNow }
	h.Profile.now = clock
	h.Records.now = clock
	h.Metrics.now = clock
	h.Assessment.now = clock
	h.Admin.now = clock

	mux := http.NewServeMux()
	Mount(mux, h, env.jwt, middleware.NewKeyedLimiter(5, 15*time.Minute), middleware.LoggingInterceptor(logger))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env.auth = apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	env.profile = apiconnect.NewProfileServiceClient(http.DefaultClient, server.URL)
	env.records = apiconnect.NewRecordServiceClient(http.DefaultClient, server.URL)
	env.metrics = apiconnect.NewMetricsServiceClient(http.DefaultClient, server.URL)
	env.assessment = apiconnect.NewAssessmentServiceClient(http.DefaultClient, server.URL)
	env.admin = apiconnect.NewAdminServiceClient(http.DefaultClient, server.URL)

	return env
}

// newUser provisions an account directly and returns it with a session.
func (e *testEnv) newUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user, _, err := e.authn.Provision(context.Background(), email, "", "")
	if err != nil {
		t.Fatalf("Provision failed: %v", err)
	}
	return user, e.token(t, user)
}

// newAdmin bootstraps an admin account and returns it with a session.
func (e *testEnv) newAdmin(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	pa := e.authn.Authenticator.(*auth.PasswordAuthenticator)
	if _, err := pa.EnsureAdmin(context.Background(), email, "admin-password"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	admin, err := e.store.GetUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	return admin, e.token(t, admin)
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.jwt.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return token
}

// authed wraps msg in a request carrying a bearer token.
func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if cerr.Code() != want {
		t.Fatalf("code: expected %v, got %v (%s)", want, cerr.Code(), cerr.Message())
	}
}
