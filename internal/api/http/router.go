package http

import (
	"net/http"

	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Role       *RoleHandler
	Org        *OrganizationHandler
	Agency     *AgencyHandler
	Driver     *DriverHandler
	Plan       *PlanHandler
	Onboarding *OnboardingHandler
}

// NewRouter mounts all routes. Public routes (auth, onboarding, plan catalog,
// health) skip the middleware chain; everything else requires a bearer token
// and passes the tenant guard.
func NewRouter(h Handlers, authSvc service.AuthService, tenantSvc service.TenantService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	public := r.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	public.HandleFunc("/onboarding/sessions", h.Onboarding.CreateSession).Methods(http.MethodPost)
	public.HandleFunc("/onboarding/sessions/{token}", h.Onboarding.GetSession).Methods(http.MethodGet)
	public.HandleFunc("/onboarding/sessions/{token}/owner", h.Onboarding.SaveOwnerInfo).Methods(http.MethodPut)
	public.HandleFunc("/onboarding/sessions/{token}/organization", h.Onboarding.SaveOrganizationInfo).Methods(http.MethodPut)
	public.HandleFunc("/onboarding/sessions/{token}/complete", h.Onboarding.Complete).Methods(http.MethodPost)

	public.HandleFunc("/plans", h.Plan.List).Methods(http.MethodGet)
	public.HandleFunc("/plans/{id}", h.Plan.Get).Methods(http.MethodGet)

	authMW := NewAuthMiddleware(authSvc)
	tenantMW := NewTenantMiddleware(tenantSvc)

	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(authMW.Handle, tenantMW.Handle)

	protected.HandleFunc("/users", h.User.Create).Methods(http.MethodPost)
	protected.HandleFunc("/users/me", h.User.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", h.User.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/users/{id}", h.User.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}/active", h.User.SetActive).Methods(http.MethodPut)

	protected.HandleFunc("/permissions", h.Role.Permissions).Methods(http.MethodGet)
	protected.HandleFunc("/permissions/effective", h.Role.EffectivePermissions).Methods(http.MethodGet)

	protected.HandleFunc("/roles", h.Role.Create).Methods(http.MethodPost)
	protected.HandleFunc("/roles/{id}", h.Role.Get).Methods(http.MethodGet)
	protected.HandleFunc("/roles/{id}", h.Role.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/roles/{id}/permissions", h.Role.AssignPermissions).Methods(http.MethodPut)
	protected.HandleFunc("/role-assignments", h.Role.Grant).Methods(http.MethodPost)
	protected.HandleFunc("/role-assignments/{id}", h.Role.Revoke).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/role-assignments", h.Role.ListEffective).Methods(http.MethodGet)

	protected.HandleFunc("/organizations", h.Org.List).Methods(http.MethodGet)
	protected.HandleFunc("/organizations/{id}", h.Org.Get).Methods(http.MethodGet)
	protected.HandleFunc("/organizations/{id}/active", h.Org.SetActive).Methods(http.MethodPut)
	protected.HandleFunc("/organizations/{orgId}/roles", h.Role.ListByOrganization).Methods(http.MethodGet)
	protected.HandleFunc("/organizations/{orgId}/agencies", h.Agency.ListByOrganization).Methods(http.MethodGet)
	protected.HandleFunc("/organizations/{orgId}/drivers", h.Driver.ListByOrganization).Methods(http.MethodGet)

	protected.HandleFunc("/agencies", h.Agency.Create).Methods(http.MethodPost)
	protected.HandleFunc("/agencies/{id}", h.Agency.Get).Methods(http.MethodGet)
	protected.HandleFunc("/agencies/{id}", h.Agency.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/drivers", h.Driver.Create).Methods(http.MethodPost)
	protected.HandleFunc("/drivers/{id}", h.Driver.Get).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{id}", h.Driver.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/plans", h.Plan.Create).Methods(http.MethodPost)
	protected.HandleFunc("/plans/{id}", h.Plan.Update).Methods(http.MethodPut)

	return r
}
