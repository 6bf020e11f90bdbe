package http

import (
	"net/http"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type RoleHandler struct {
	roleSvc   service.RoleService
	tenantSvc service.TenantService
}

func NewRoleHandler(roleSvc service.RoleService, tenantSvc service.TenantService) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc, tenantSvc: tenantSvc}
}

type createRoleRequest struct {
	Name           string   `json:"name"`
	OrganizationID *int32   `json:"organization_id"`
	Permissions    []string `json:"permissions"`
	RoleType       string   `json:"role_type"`
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.roleSvc.CreateRole(r.Context(), req.Name, req.OrganizationID, req.Permissions, domain.RoleType(req.RoleType))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	role, err := h.roleSvc.GetRole(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseID(mux.Vars(r)["orgId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	roles, err := h.roleSvc.ListRoles(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

type assignPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

func (h *RoleHandler) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	actor, _ := UserFromContext(r.Context())
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	var req assignPermissionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.roleSvc.AssignPermissions(r.Context(), actor, id, req.Permissions)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := UserFromContext(r.Context())
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	if err := h.roleSvc.DeleteRole(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type grantRequest struct {
	UserID         int32      `json:"user_id"`
	RoleID         int32      `json:"role_id"`
	OrganizationID *int32     `json:"organization_id"`
	AgencyID       *int32     `json:"agency_id"`
	ExpiresOn      *time.Time `json:"expires_on"`
}

func (h *RoleHandler) Grant(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no authenticated user")
		return
	}
	var req grantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grant, err := h.roleSvc.Grant(r.Context(), req.UserID, req.RoleID, req.OrganizationID, req.AgencyID, req.ExpiresOn, actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

func (h *RoleHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no authenticated user")
		return
	}
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}
	if err := h.roleSvc.Revoke(r.Context(), id, actor.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RoleHandler) ListEffective(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	grants, err := h.roleSvc.ListEffective(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

// Permissions serves the static catalog.
func (h *RoleHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	if resource := r.URL.Query().Get("resource"); resource != "" {
		writeJSON(w, http.StatusOK, domain.PermissionsForResource(resource))
		return
	}
	writeJSON(w, http.StatusOK, domain.AllPermissions())
}

// EffectivePermissions returns the actor's live permission union.
func (h *RoleHandler) EffectivePermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no authenticated user")
		return
	}
	perms, err := h.tenantSvc.EffectivePermissions(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"permissions": perms})
}
