package domain

import "time"

// UserRole is a role grant. Revocation deactivates the grant in place;
// grants are audit records and are not deleted on revoke.
type UserRole struct {
	ID             int32      `json:"id"`
	UserID         int32      `json:"user_id"`
	RoleID         int32      `json:"role_id"`
	OrganizationID *int32     `json:"organization_id,omitempty"`
	AgencyID       *int32     `json:"agency_id,omitempty"`
	AssignedOn     time.Time  `json:"assigned_on"`
	AssignedBy     int32      `json:"assigned_by"`
	ExpiresOn      *time.Time `json:"expires_on,omitempty"`
	IsActive       bool       `json:"is_active"`
	RevokedOn      *time.Time `json:"revoked_on,omitempty"`
	RevokedBy      *int32     `json:"revoked_by,omitempty"`
}

// IsExpired reports whether the grant's expiry has passed. Grants without an
// expiry never expire.
func (g *UserRole) IsExpired(now time.Time) bool {
	return g.ExpiresOn != nil && g.ExpiresOn.Before(now)
}

// IsEffective reports whether the grant currently confers its role.
func (g *UserRole) IsEffective(now time.Time) bool {
	return g.IsActive && !g.IsExpired(now)
}
