package domain

import "time"

// RoleType classifies how a role came to exist and who may change it.
type RoleType string

const (
	RoleTypeSystem     RoleType = "SYSTEM"
	RoleTypePredefined RoleType = "PREDEFINED"
	RoleTypeCustom     RoleType = "CUSTOM"
)

// Well-known role names created at bootstrap.
const (
	RoleNameSuperAdmin    = "SUPER_ADMIN"
	RoleNameDefaultClient = "CLIENT"
)

// Role is a named bundle of permission codes. OrganizationID is nil exactly
// when RoleType is SYSTEM; system roles are shared across all tenants.
type Role struct {
	ID             int32     `json:"id"`
	OrganizationID *int32    `json:"organization_id,omitempty"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	RoleType       RoleType  `json:"role_type"`
	IsSystemRole   bool      `json:"is_system_role"`
	IsDefaultRole  bool      `json:"is_default_role"`
	Priority       int32     `json:"priority"`
	Permissions    []string  `json:"permissions"`
	Color          string    `json:"color,omitempty"`
	Icon           string    `json:"icon,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// CanBeModified reports whether ordinary tenant administrators may change
// the role's permission set.
func (r *Role) CanBeModified() bool {
	return !r.IsSystemRole
}

// CanBeDeleted reports whether the role may be removed. System and default
// roles are never deleted.
func (r *Role) CanBeDeleted() bool {
	return !r.IsSystemRole && !r.IsDefaultRole
}

// HasPermission reports whether the role carries the given permission code.
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// DefaultClientPermissions is the minimal permission template for the
// default client role.
func DefaultClientPermissions() []string {
	return []string{
		PermVehicleRead,
		PermRentalRead,
		PermRentalCreate,
		PermUserRead,
		PermUserUpdate,
	}
}
