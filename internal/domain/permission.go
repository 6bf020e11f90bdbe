package domain

import "strings"

// Permission is an immutable capability descriptor. Identity is the code;
// the catalog below is process-wide static data and safe for concurrent reads.
type Permission struct {
	Code        string `json:"code"`
	Resource    string `json:"resource"`
	Description string `json:"description"`
}

// Resource groups for permission codes.
const (
	ResourceVehicle      = "vehicle"
	ResourceDriver       = "driver"
	ResourceRental       = "rental"
	ResourceUser         = "user"
	ResourceAgency       = "agency"
	ResourceOrganization = "organization"
	ResourceRole         = "role"
	ResourcePayment      = "payment"
	ResourceReport       = "report"
	ResourceSettings     = "settings"
	ResourceSystem       = "system"
)

// Permission codes, grouped by resource.
const (
	PermVehicleRead   = "vehicle:read"
	PermVehicleCreate = "vehicle:create"
	PermVehicleUpdate = "vehicle:update"
	PermVehicleDelete = "vehicle:delete"

	PermDriverRead   = "driver:read"
	PermDriverCreate = "driver:create"
	PermDriverUpdate = "driver:update"
	PermDriverDelete = "driver:delete"

	PermRentalRead     = "rental:read"
	PermRentalCreate   = "rental:create"
	PermRentalUpdate   = "rental:update"
	PermRentalCancel   = "rental:cancel"
	PermRentalApprove  = "rental:approve"
	PermRentalComplete = "rental:complete"

	PermUserRead   = "user:read"
	PermUserCreate = "user:create"
	PermUserUpdate = "user:update"
	PermUserDelete = "user:delete"
	PermUserInvite = "user:invite"

	PermAgencyRead   = "agency:read"
	PermAgencyCreate = "agency:create"
	PermAgencyUpdate = "agency:update"
	PermAgencyDelete = "agency:delete"

	PermOrganizationRead   = "organization:read"
	PermOrganizationCreate = "organization:create"
	PermOrganizationUpdate = "organization:update"
	PermOrganizationDelete = "organization:delete"

	PermRoleRead   = "role:read"
	PermRoleCreate = "role:create"
	PermRoleUpdate = "role:update"
	PermRoleDelete = "role:delete"
	PermRoleAssign = "role:assign"

	PermPaymentRead    = "payment:read"
	PermPaymentProcess = "payment:process"
	PermPaymentRefund  = "payment:refund"

	PermReportRead      = "report:read"
	PermReportFinancial = "report:financial"
	PermReportExport    = "report:export"

	PermSettingsRead   = "settings:read"
	PermSettingsUpdate = "settings:update"

	PermSystemAdmin   = "system:admin"
	PermSystemMonitor = "system:monitor"
)

var permissionCatalog = []Permission{
	{PermVehicleRead, ResourceVehicle, "View vehicles"},
	{PermVehicleCreate, ResourceVehicle, "Add vehicles"},
	{PermVehicleUpdate, ResourceVehicle, "Edit vehicles"},
	{PermVehicleDelete, ResourceVehicle, "Remove vehicles"},

	{PermDriverRead, ResourceDriver, "View drivers"},
	{PermDriverCreate, ResourceDriver, "Add drivers"},
	{PermDriverUpdate, ResourceDriver, "Edit drivers"},
	{PermDriverDelete, ResourceDriver, "Remove drivers"},

	{PermRentalRead, ResourceRental, "View rentals"},
	{PermRentalCreate, ResourceRental, "Create rental requests"},
	{PermRentalUpdate, ResourceRental, "Edit rentals"},
	{PermRentalCancel, ResourceRental, "Cancel rentals"},
	{PermRentalApprove, ResourceRental, "Approve rental requests"},
	{PermRentalComplete, ResourceRental, "Mark rentals completed"},

	{PermUserRead, ResourceUser, "View users"},
	{PermUserCreate, ResourceUser, "Create users"},
	{PermUserUpdate, ResourceUser, "Edit users"},
	{PermUserDelete, ResourceUser, "Remove users"},
	{PermUserInvite, ResourceUser, "Invite users"},

	{PermAgencyRead, ResourceAgency, "View agencies"},
	{PermAgencyCreate, ResourceAgency, "Create agencies"},
	{PermAgencyUpdate, ResourceAgency, "Edit agencies"},
	{PermAgencyDelete, ResourceAgency, "Remove agencies"},

	{PermOrganizationRead, ResourceOrganization, "View organizations"},
	{PermOrganizationCreate, ResourceOrganization, "Create organizations"},
	{PermOrganizationUpdate, ResourceOrganization, "Edit organizations"},
	{PermOrganizationDelete, ResourceOrganization, "Remove organizations"},

	{PermRoleRead, ResourceRole, "View roles"},
	{PermRoleCreate, ResourceRole, "Create roles"},
	{PermRoleUpdate, ResourceRole, "Edit roles"},
	{PermRoleDelete, ResourceRole, "Remove roles"},
	{PermRoleAssign, ResourceRole, "Assign roles to users"},

	{PermPaymentRead, ResourcePayment, "View payments"},
	{PermPaymentProcess, ResourcePayment, "Process payments"},
	{PermPaymentRefund, ResourcePayment, "Refund payments"},

	{PermReportRead, ResourceReport, "View reports"},
	{PermReportFinancial, ResourceReport, "View financial reports"},
	{PermReportExport, ResourceReport, "Export reports"},

	{PermSettingsRead, ResourceSettings, "View settings"},
	{PermSettingsUpdate, ResourceSettings, "Edit settings"},

	{PermSystemAdmin, ResourceSystem, "Full system administration"},
	{PermSystemMonitor, ResourceSystem, "System monitoring"},
}

var (
	permissionsByCode     map[string]Permission
	permissionsByResource map[string][]Permission
)

func init() {
	permissionsByCode = make(map[string]Permission, len(permissionCatalog))
	permissionsByResource = make(map[string][]Permission)
	for _, p := range permissionCatalog {
		permissionsByCode[p.Code] = p
		permissionsByResource[p.Resource] = append(permissionsByResource[p.Resource], p)
	}
}

// LookupPermission resolves a permission code against the catalog.
func LookupPermission(code string) (Permission, bool) {
	p, ok := permissionsByCode[code]
	return p, ok
}

// PermissionsForResource returns all permissions for a resource. The
// resource name is matched case-insensitively.
func PermissionsForResource(resource string) []Permission {
	return permissionsByResource[strings.ToLower(resource)]
}

// AllPermissions returns a copy of the full catalog.
func AllPermissions() []Permission {
	out := make([]Permission, len(permissionCatalog))
	copy(out, permissionCatalog)
	return out
}

// AllPermissionCodes returns every permission code in catalog order.
func AllPermissionCodes() []string {
	codes := make([]string, len(permissionCatalog))
	for i, p := range permissionCatalog {
		codes[i] = p.Code
	}
	return codes
}

// AllResources returns the distinct resource names in catalog order.
func AllResources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range permissionCatalog {
		if !seen[p.Resource] {
			seen[p.Resource] = true
			out = append(out, p.Resource)
		}
	}
	return out
}
