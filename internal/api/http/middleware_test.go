package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(2) != nil {
		user = args.Get(2).(*domain.User)
	}
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTenantService struct {
	mock.Mock
}

func (m *mockTenantService) ResolveFilter(ctx context.Context, userID int32) (domain.TenantFilter, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.TenantFilter), args.Error(1)
}

func (m *mockTenantService) EffectivePermissions(ctx context.Context, userID int32) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockTenantService) CanAccessOrganization(ctx context.Context, userID, orgID int32) (bool, error) {
	args := m.Called(ctx, userID, orgID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTenantService) CanAccessAgency(ctx context.Context, userID, agencyID int32) (bool, error) {
	args := m.Called(ctx, userID, agencyID)
	return args.Bool(0), args.Error(1)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	authSvc := new(mockAuthService)
	mw := NewAuthMiddleware(authSvc)

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	authSvc := new(mockAuthService)
	mw := NewAuthMiddleware(authSvc)

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	req.Header.Set("Authorization", "Basic abc123")
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	authSvc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	authSvc := new(mockAuthService)
	authSvc.On("Authenticate", mock.Anything, "bad-token").Return(nil, errors.New("token is expired"))
	mw := NewAuthMiddleware(authSvc)

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewarePlacesUserInContext(t *testing.T) {
	authSvc := new(mockAuthService)
	authSvc.On("Authenticate", mock.Anything, "good-token").
		Return(&domain.User{ID: 7, Email: "ada@example.com"}, nil)
	mw := NewAuthMiddleware(authSvc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	mw.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, int32(7), user.ID)
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func requestWithUser(t *testing.T, userID int32) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/agencies", nil)
	ctx := context.WithValue(req.Context(), userContextKey, &domain.User{ID: userID})
	return req.WithContext(ctx)
}

func TestTenantMiddlewareUnscopedRequestPassesThrough(t *testing.T) {
	tenantSvc := new(mockTenantService)
	mw := NewTenantMiddleware(tenantSvc)

	var called bool
	rec := httptest.NewRecorder()
	mw.Handle(okHandler(&called)).ServeHTTP(rec, requestWithUser(t, 7))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	tenantSvc.AssertNotCalled(t, "CanAccessOrganization", mock.Anything, mock.Anything, mock.Anything)
	tenantSvc.AssertNotCalled(t, "CanAccessAgency", mock.Anything, mock.Anything, mock.Anything)
}

func TestTenantMiddlewareDeniesForeignOrganization(t *testing.T) {
	tenantSvc := new(mockTenantService)
	tenantSvc.On("CanAccessOrganization", mock.Anything, int32(7), int32(99)).Return(false, nil)
	mw := NewTenantMiddleware(tenantSvc)

	var called bool
	req := requestWithUser(t, 7)
	req.Header.Set(headerOrganizationID, "99")
	rec := httptest.NewRecorder()
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestTenantMiddlewareAllowsOwnScope(t *testing.T) {
	tenantSvc := new(mockTenantService)
	tenantSvc.On("CanAccessOrganization", mock.Anything, int32(7), int32(3)).Return(true, nil)
	tenantSvc.On("CanAccessAgency", mock.Anything, int32(7), int32(12)).Return(true, nil)
	mw := NewTenantMiddleware(tenantSvc)

	var called bool
	req := requestWithUser(t, 7)
	req.Header.Set(headerOrganizationID, "3")
	req.Header.Set(headerAgencyID, "12")
	rec := httptest.NewRecorder()
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	tenantSvc.AssertExpectations(t)
}

func TestTenantMiddlewareRejectsBadHeaderValue(t *testing.T) {
	tenantSvc := new(mockTenantService)
	mw := NewTenantMiddleware(tenantSvc)

	var called bool
	req := requestWithUser(t, 7)
	req.Header.Set(headerOrganizationID, "not-a-number")
	rec := httptest.NewRecorder()
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestTenantMiddlewareRequiresAuthenticatedUser(t *testing.T) {
	tenantSvc := new(mockTenantService)
	mw := NewTenantMiddleware(tenantSvc)

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/agencies", nil)
	mw.Handle(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
