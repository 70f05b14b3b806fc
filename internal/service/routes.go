package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/middleware"
	"github.com/mmynk/healthcoach/pkg/api"
	"github.com/mmynk/healthcoach/pkg/api/apiconnect"
)

// Handlers groups the RPC implementations served by Mount.
type Handlers struct {
	Auth       *AuthService
	Profile    *ProfileService
	Records    *RecordService
	Metrics    *MetricsService
	Assessment *AssessmentService
	Admin      *AdminService
}

// Mount registers every service on mux. common interceptors (logging,
// metrics) wrap each service ahead of its auth checks. resetLimiter bounds
// ConfirmPasswordReset attempts per token.
func Mount(mux *http.ServeMux, h Handlers, jwtManager *auth.JWTManager, resetLimiter *middleware.KeyedLimiter, common ...connect.Interceptor) {
	with := func(extra ...connect.Interceptor) connect.HandlerOption {
		chain := append(append([]connect.Interceptor{}, common...), extra...)
		return connect.WithInterceptors(chain...)
	}

	authenticated := with(middleware.RequireAuth(jwtManager))

	mux.Handle(apiconnect.NewAuthServiceHandler(h.Auth, with(
		middleware.OptionalAuth(jwtManager),
		middleware.RateLimit(resetLimiter, ResetTokenKey),
	)))
	mux.Handle(apiconnect.NewProfileServiceHandler(h.Profile, authenticated))
	mux.Handle(apiconnect.NewRecordServiceHandler(h.Records, authenticated))
	mux.Handle(apiconnect.NewMetricsServiceHandler(h.Metrics, with()))
	mux.Handle(apiconnect.NewAssessmentServiceHandler(h.Assessment, authenticated))
	mux.Handle(apiconnect.NewAdminServiceHandler(h.Admin, with(
		middleware.RequireAuth(jwtManager),
		middleware.RequireAdmin(),
	)))
}

// ResetTokenKey keys ConfirmPasswordReset requests by the submitted token.
func ResetTokenKey(req connect.AnyRequest) (string, bool) {
	msg, ok := req.Any().(*api.ConfirmPasswordResetRequest)
	if !ok || msg.Token == "" {
		return "", false
	}
	return msg.Token, true
}
