package domain

// TenantFilter is the ground-truth visibility scope resolved for an
// authenticated actor. Every tenant-scoped query must apply it; ids supplied
// in a request can never widen it.
type TenantFilter struct {
	IsGlobalAccess     bool   `json:"is_global_access"`
	OrganizationID     *int32 `json:"organization_id,omitempty"`
	AgencyID           *int32 `json:"agency_id,omitempty"`
	IsAgencyRestricted bool   `json:"is_agency_restricted"`
}

// AllowsOrganization reports whether the filter permits acting within the
// given organization.
func (f TenantFilter) AllowsOrganization(orgID int32) bool {
	if f.IsGlobalAccess {
		return true
	}
	return f.OrganizationID != nil && *f.OrganizationID == orgID
}
