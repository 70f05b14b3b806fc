package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/pkg/api"
)

// Fully-qualified service names.
const (
	AuthServiceName       = "healthcoach.v1.AuthService"
	ProfileServiceName    = "healthcoach.v1.ProfileService"
	RecordServiceName     = "healthcoach.v1.RecordService"
	MetricsServiceName    = "healthcoach.v1.MetricsService"
	AssessmentServiceName = "healthcoach.v1.AssessmentService"
	AdminServiceName      = "healthcoach.v1.AdminService"
)

// Procedure paths, one per RPC.
const (
	AuthServiceRegisterProcedure             = "/healthcoach.v1.AuthService/Register"
	AuthServiceLoginProcedure                = "/healthcoach.v1.AuthService/Login"
	AuthServiceChangePasswordProcedure       = "/healthcoach.v1.AuthService/ChangePassword"
	AuthServiceRequestPasswordResetProcedure = "/healthcoach.v1.AuthService/RequestPasswordReset"
	AuthServiceConfirmPasswordResetProcedure = "/healthcoach.v1.AuthService/ConfirmPasswordReset"
	AuthServiceGetCurrentUserProcedure       = "/healthcoach.v1.AuthService/GetCurrentUser"
	ProfileServiceGetProfileProcedure        = "/healthcoach.v1.ProfileService/GetProfile"
	ProfileServiceUpdateProfileProcedure     = "/healthcoach.v1.ProfileService/UpdateProfile"
	RecordServiceSaveRecordProcedure         = "/healthcoach.v1.RecordService/SaveRecord"
	RecordServiceListRecordsProcedure        = "/healthcoach.v1.RecordService/ListRecords"
	RecordServiceGetRecordProcedure          = "/healthcoach.v1.RecordService/GetRecord"
	RecordServiceDeleteRecordProcedure       = "/healthcoach.v1.RecordService/DeleteRecord"
	RecordServiceGetDashboardProcedure       = "/healthcoach.v1.RecordService/GetDashboard"
	MetricsServiceComputeMetricsProcedure    = "/healthcoach.v1.MetricsService/ComputeMetrics"
	AssessmentServiceAssessProcedure         = "/healthcoach.v1.AssessmentService/Assess"
	AdminServiceListUsersProcedure           = "/healthcoach.v1.AdminService/ListUsers"
	AdminServiceCreateUserProcedure          = "/healthcoach.v1.AdminService/CreateUser"
	AdminServiceDeleteUserProcedure          = "/healthcoach.v1.AdminService/DeleteUser"
	AdminServiceResetUserPasswordProcedure   = "/healthcoach.v1.AdminService/ResetUserPassword"
	AdminServiceGetUserRecordsProcedure      = "/healthcoach.v1.AdminService/GetUserRecords"
)

// route dispatches on the exact procedure path.
func route(service string, handlers map[string]http.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// AuthServiceHandler is implemented by the AuthService server.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	ChangePassword(context.Context, *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error)
	RequestPasswordReset(context.Context, *connect.Request[api.RequestPasswordResetRequest]) (*connect.Response[api.RequestPasswordResetResponse], error)
	ConfirmPasswordReset(context.Context, *connect.Request[api.ConfirmPasswordResetRequest]) (*connect.Response[api.ConfirmPasswordResetResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AuthServiceName, map[string]http.Handler{
		AuthServiceRegisterProcedure:             connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:                connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceChangePasswordProcedure:       connect.NewUnaryHandler(AuthServiceChangePasswordProcedure, svc.ChangePassword, opts...),
		AuthServiceRequestPasswordResetProcedure: connect.NewUnaryHandler(AuthServiceRequestPasswordResetProcedure, svc.RequestPasswordReset, opts...),
		AuthServiceConfirmPasswordResetProcedure: connect.NewUnaryHandler(AuthServiceConfirmPasswordResetProcedure, svc.ConfirmPasswordReset, opts...),
		AuthServiceGetCurrentUserProcedure:       connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
	})
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	ChangePassword(context.Context, *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error)
	RequestPasswordReset(context.Context, *connect.Request[api.RequestPasswordResetRequest]) (*connect.Response[api.RequestPasswordResetResponse], error)
	ConfirmPasswordReset(context.Context, *connect.Request[api.ConfirmPasswordResetRequest]) (*connect.Response[api.ConfirmPasswordResetResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

type authServiceClient struct {
	register             *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login                *connect.Client[api.LoginRequest, api.LoginResponse]
	changePassword       *connect.Client[api.ChangePasswordRequest, api.ChangePasswordResponse]
	requestPasswordReset *connect.Client[api.RequestPasswordResetRequest, api.RequestPasswordResetResponse]
	confirmPasswordReset *connect.Client[api.ConfirmPasswordResetRequest, api.ConfirmPasswordResetResponse]
	getCurrentUser       *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

// NewAuthServiceClient constructs a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register:             connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:                connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		changePassword:       connect.NewClient[api.ChangePasswordRequest, api.ChangePasswordResponse](httpClient, baseURL+AuthServiceChangePasswordProcedure, opts...),
		requestPasswordReset: connect.NewClient[api.RequestPasswordResetRequest, api.RequestPasswordResetResponse](httpClient, baseURL+AuthServiceRequestPasswordResetProcedure, opts...),
		confirmPasswordReset: connect.NewClient[api.ConfirmPasswordResetRequest, api.ConfirmPasswordResetResponse](httpClient, baseURL+AuthServiceConfirmPasswordResetProcedure, opts...),
		getCurrentUser:       connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	return c.changePassword.CallUnary(ctx, req)
}

func (c *authServiceClient) RequestPasswordReset(ctx context.Context, req *connect.Request[api.RequestPasswordResetRequest]) (*connect.Response[api.RequestPasswordResetResponse], error) {
	return c.requestPasswordReset.CallUnary(ctx, req)
}

func (c *authServiceClient) ConfirmPasswordReset(ctx context.Context, req *connect.Request[api.ConfirmPasswordResetRequest]) (*connect.Response[api.ConfirmPasswordResetResponse], error) {
	return c.confirmPasswordReset.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// ProfileServiceHandler is implemented by the ProfileService server.
type ProfileServiceHandler interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewProfileServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewProfileServiceHandler(svc ProfileServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(ProfileServiceName, map[string]http.Handler{
		ProfileServiceGetProfileProcedure:    connect.NewUnaryHandler(ProfileServiceGetProfileProcedure, svc.GetProfile, opts...),
		ProfileServiceUpdateProfileProcedure: connect.NewUnaryHandler(ProfileServiceUpdateProfileProcedure, svc.UpdateProfile, opts...),
	})
}

// ProfileServiceClient is a client for the ProfileService.
type ProfileServiceClient interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

type profileServiceClient struct {
	getProfile    *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	updateProfile *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
}

// NewProfileServiceClient constructs a client for the ProfileService at baseURL.
func NewProfileServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ProfileServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &profileServiceClient{
		getProfile:    connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](httpClient, baseURL+ProfileServiceGetProfileProcedure, opts...),
		updateProfile: connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL+ProfileServiceUpdateProfileProcedure, opts...),
	}
}

func (c *profileServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *profileServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// RecordServiceHandler is implemented by the RecordService server.
type RecordServiceHandler interface {
	SaveRecord(context.Context, *connect.Request[api.SaveRecordRequest]) (*connect.Response[api.SaveRecordResponse], error)
	ListRecords(context.Context, *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error)
	GetRecord(context.Context, *connect.Request[api.GetRecordRequest]) (*connect.Response[api.GetRecordResponse], error)
	DeleteRecord(context.Context, *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewRecordServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewRecordServiceHandler(svc RecordServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(RecordServiceName, map[string]http.Handler{
		RecordServiceSaveRecordProcedure:   connect.NewUnaryHandler(RecordServiceSaveRecordProcedure, svc.SaveRecord, opts...),
		RecordServiceListRecordsProcedure:  connect.NewUnaryHandler(RecordServiceListRecordsProcedure, svc.ListRecords, opts...),
		RecordServiceGetRecordProcedure:    connect.NewUnaryHandler(RecordServiceGetRecordProcedure, svc.GetRecord, opts...),
		RecordServiceDeleteRecordProcedure: connect.NewUnaryHandler(RecordServiceDeleteRecordProcedure, svc.DeleteRecord, opts...),
		RecordServiceGetDashboardProcedure: connect.NewUnaryHandler(RecordServiceGetDashboardProcedure, svc.GetDashboard, opts...),
	})
}

// RecordServiceClient is a client for the RecordService.
type RecordServiceClient interface {
	SaveRecord(context.Context, *connect.Request[api.SaveRecordRequest]) (*connect.Response[api.SaveRecordResponse], error)
	ListRecords(context.Context, *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error)
	GetRecord(context.Context, *connect.Request[api.GetRecordRequest]) (*connect.Response[api.GetRecordResponse], error)
	DeleteRecord(context.Context, *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

type recordServiceClient struct {
	saveRecord   *connect.Client[api.SaveRecordRequest, api.SaveRecordResponse]
	listRecords  *connect.Client[api.ListRecordsRequest, api.ListRecordsResponse]
	getRecord    *connect.Client[api.GetRecordRequest, api.GetRecordResponse]
	deleteRecord *connect.Client[api.DeleteRecordRequest, api.DeleteRecordResponse]
	getDashboard *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
}

// NewRecordServiceClient constructs a client for the RecordService at baseURL.
func NewRecordServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RecordServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &recordServiceClient{
		saveRecord:   connect.NewClient[api.SaveRecordRequest, api.SaveRecordResponse](httpClient, baseURL+RecordServiceSaveRecordProcedure, opts...),
		listRecords:  connect.NewClient[api.ListRecordsRequest, api.ListRecordsResponse](httpClient, baseURL+RecordServiceListRecordsProcedure, opts...),
		getRecord:    connect.NewClient[api.GetRecordRequest, api.GetRecordResponse](httpClient, baseURL+RecordServiceGetRecordProcedure, opts...),
		deleteRecord: connect.NewClient[api.DeleteRecordRequest, api.DeleteRecordResponse](httpClient, baseURL+RecordServiceDeleteRecordProcedure, opts...),
		getDashboard: connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+RecordServiceGetDashboardProcedure, opts...),
	}
}

func (c *recordServiceClient) SaveRecord(ctx context.Context, req *connect.Request[api.SaveRecordRequest]) (*connect.Response[api.SaveRecordResponse], error) {
	return c.saveRecord.CallUnary(ctx, req)
}

func (c *recordServiceClient) ListRecords(ctx context.Context, req *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	return c.listRecords.CallUnary(ctx, req)
}

func (c *recordServiceClient) GetRecord(ctx context.Context, req *connect.Request[api.GetRecordRequest]) (*connect.Response[api.GetRecordResponse], error) {
	return c.getRecord.CallUnary(ctx, req)
}

func (c *recordServiceClient) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	return c.deleteRecord.CallUnary(ctx, req)
}

func (c *recordServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// MetricsServiceHandler is implemented by the MetricsService server.
type MetricsServiceHandler interface {
	ComputeMetrics(context.Context, *connect.Request[api.ComputeMetricsRequest]) (*connect.Response[api.ComputeMetricsResponse], error)
}

// NewMetricsServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewMetricsServiceHandler(svc MetricsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(MetricsServiceName, map[string]http.Handler{
		MetricsServiceComputeMetricsProcedure: connect.NewUnaryHandler(MetricsServiceComputeMetricsProcedure, svc.ComputeMetrics, opts...),
	})
}

// MetricsServiceClient is a client for the MetricsService.
type MetricsServiceClient interface {
	ComputeMetrics(context.Context, *connect.Request[api.ComputeMetricsRequest]) (*connect.Response[api.ComputeMetricsResponse], error)
}

type metricsServiceClient struct {
	computeMetrics *connect.Client[api.ComputeMetricsRequest, api.ComputeMetricsResponse]
}

// NewMetricsServiceClient constructs a client for the MetricsService at baseURL.
func NewMetricsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MetricsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &metricsServiceClient{
		computeMetrics: connect.NewClient[api.ComputeMetricsRequest, api.ComputeMetricsResponse](httpClient, baseURL+MetricsServiceComputeMetricsProcedure, opts...),
	}
}

func (c *metricsServiceClient) ComputeMetrics(ctx context.Context, req *connect.Request[api.ComputeMetricsRequest]) (*connect.Response[api.ComputeMetricsResponse], error) {
	return c.computeMetrics.CallUnary(ctx, req)
}

// AssessmentServiceHandler is implemented by the AssessmentService server.
type AssessmentServiceHandler interface {
	Assess(context.Context, *connect.Request[api.AssessRequest]) (*connect.Response[api.AssessResponse], error)
}

// NewAssessmentServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAssessmentServiceHandler(svc AssessmentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AssessmentServiceName, map[string]http.Handler{
		AssessmentServiceAssessProcedure: connect.NewUnaryHandler(AssessmentServiceAssessProcedure, svc.Assess, opts...),
	})
}

// AssessmentServiceClient is a client for the AssessmentService.
type AssessmentServiceClient interface {
	Assess(context.Context, *connect.Request[api.AssessRequest]) (*connect.Response[api.AssessResponse], error)
}

type assessmentServiceClient struct {
	assess *connect.Client[api.AssessRequest, api.AssessResponse]
}

// NewAssessmentServiceClient constructs a client for the AssessmentService at baseURL.
func NewAssessmentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AssessmentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &assessmentServiceClient{
		assess: connect.NewClient[api.AssessRequest, api.AssessResponse](httpClient, baseURL+AssessmentServiceAssessProcedure, opts...),
	}
}

func (c *assessmentServiceClient) Assess(ctx context.Context, req *connect.Request[api.AssessRequest]) (*connect.Response[api.AssessResponse], error) {
	return c.assess.CallUnary(ctx, req)
}

// AdminServiceHandler is implemented by the AdminService server.
type AdminServiceHandler interface {
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error)
	ResetUserPassword(context.Context, *connect.Request[api.ResetUserPasswordRequest]) (*connect.Response[api.ResetUserPasswordResponse], error)
	GetUserRecords(context.Context, *connect.Request[api.GetUserRecordsRequest]) (*connect.Response[api.GetUserRecordsResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AdminServiceName, map[string]http.Handler{
		AdminServiceListUsersProcedure:         connect.NewUnaryHandler(AdminServiceListUsersProcedure, svc.ListUsers, opts...),
		AdminServiceCreateUserProcedure:        connect.NewUnaryHandler(AdminServiceCreateUserProcedure, svc.CreateUser, opts...),
		AdminServiceDeleteUserProcedure:        connect.NewUnaryHandler(AdminServiceDeleteUserProcedure, svc.DeleteUser, opts...),
		AdminServiceResetUserPasswordProcedure: connect.NewUnaryHandler(AdminServiceResetUserPasswordProcedure, svc.ResetUserPassword, opts...),
		AdminServiceGetUserRecordsProcedure:    connect.NewUnaryHandler(AdminServiceGetUserRecordsProcedure, svc.GetUserRecords, opts...),
	})
}

// AdminServiceClient is a client for the AdminService.
type AdminServiceClient interface {
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error)
	ResetUserPassword(context.Context, *connect.Request[api.ResetUserPasswordRequest]) (*connect.Response[api.ResetUserPasswordResponse], error)
	GetUserRecords(context.Context, *connect.Request[api.GetUserRecordsRequest]) (*connect.Response[api.GetUserRecordsResponse], error)
}

type adminServiceClient struct {
	listUsers         *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	createUser        *connect.Client[api.CreateUserRequest, api.CreateUserResponse]
	deleteUser        *connect.Client[api.DeleteUserRequest, api.DeleteUserResponse]
	resetUserPassword *connect.Client[api.ResetUserPasswordRequest, api.ResetUserPasswordResponse]
	getUserRecords    *connect.Client[api.GetUserRecordsRequest, api.GetUserRecordsResponse]
}

// NewAdminServiceClient constructs a client for the AdminService at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &adminServiceClient{
		listUsers:         connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+AdminServiceListUsersProcedure, opts...),
		createUser:        connect.NewClient[api.CreateUserRequest, api.CreateUserResponse](httpClient, baseURL+AdminServiceCreateUserProcedure, opts...),
		deleteUser:        connect.NewClient[api.DeleteUserRequest, api.DeleteUserResponse](httpClient, baseURL+AdminServiceDeleteUserProcedure, opts...),
		resetUserPassword: connect.NewClient[api.ResetUserPasswordRequest, api.ResetUserPasswordResponse](httpClient, baseURL+AdminServiceResetUserPasswordProcedure, opts...),
		getUserRecords:    connect.NewClient[api.GetUserRecordsRequest, api.GetUserRecordsResponse](httpClient, baseURL+AdminServiceGetUserRecordsProcedure, opts...),
	}
}

func (c *adminServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *adminServiceClient) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	return c.deleteUser.CallUnary(ctx, req)
}

func (c *adminServiceClient) ResetUserPassword(ctx context.Context, req *connect.Request[api.ResetUserPasswordRequest]) (*connect.Response[api.ResetUserPasswordResponse], error) {
	return c.resetUserPassword.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetUserRecords(ctx context.Context, req *connect.Request[api.GetUserRecordsRequest]) (*connect.Response[api.GetUserRecordsResponse], error) {
	return c.getUserRecords.CallUnary(ctx, req)
}
