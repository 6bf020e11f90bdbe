package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// Tenant scope headers. A request carrying either header is checked against
// the actor's tenant filter; a request carrying neither is not scoped and
// passes through.
const (
	headerOrganizationID = "X-Organization-ID"
	headerAgencyID       = "X-Agency-ID"
)

// UserFromContext returns the authenticated user placed by AuthMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

type AuthMiddleware struct {
	authSvc service.AuthService
}

func NewAuthMiddleware(authSvc service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

func (m *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		user, err := m.authSvc.Authenticate(r.Context(), parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantMiddleware enforces tenant isolation for scoped requests. Denials
// are 403, never 404: the existence of a foreign tenant is not a secret,
// its contents are.
type TenantMiddleware struct {
	tenantSvc service.TenantService
}

func NewTenantMiddleware(tenantSvc service.TenantService) *TenantMiddleware {
	return &TenantMiddleware{tenantSvc: tenantSvc}
}

func (m *TenantMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no authenticated user")
			return
		}

		orgHeader := r.Header.Get(headerOrganizationID)
		agencyHeader := r.Header.Get(headerAgencyID)
		if orgHeader == "" && agencyHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		if orgHeader != "" {
			orgID, err := parseID(orgHeader)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid organization id header")
				return
			}
			allowed, err := m.tenantSvc.CanAccessOrganization(r.Context(), user.ID, orgID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if !allowed {
				writeError(w, http.StatusForbidden, "access to organization denied")
				return
			}
		}

		if agencyHeader != "" {
			agencyID, err := parseID(agencyHeader)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid agency id header")
				return
			}
			allowed, err := m.tenantSvc.CanAccessAgency(r.Context(), user.ID, agencyID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if !allowed {
				writeError(w, http.StatusForbidden, "access to agency denied")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func parseID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
