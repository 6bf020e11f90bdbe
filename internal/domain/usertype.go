package domain

// UserType is the fixed taxonomy of actor kinds. The set is closed; adding
// a variant means extending the attribute table below.
type UserType string

const (
	UserTypeSuperAdmin        UserType = "SUPER_ADMIN"
	UserTypeSystemSupport     UserType = "SYSTEM_SUPPORT"
	UserTypeOrganizationOwner UserType = "ORGANIZATION_OWNER"
	UserTypeOrganizationAdmin UserType = "ORGANIZATION_ADMIN"
	UserTypeFleetManager      UserType = "FLEET_MANAGER"
	UserTypeAgencyManager     UserType = "AGENCY_MANAGER"
	UserTypeFinanceOfficer    UserType = "FINANCE_OFFICER"
	UserTypeRentalAgent       UserType = "RENTAL_AGENT"
	UserTypeDriver            UserType = "DRIVER"
	UserTypeClient            UserType = "CLIENT"
)

// ResourceLimits are the per-organization resource ceilings.
type ResourceLimits struct {
	MaxAgencies int32 `json:"max_agencies"`
	MaxVehicles int32 `json:"max_vehicles"`
	MaxDrivers  int32 `json:"max_drivers"`
	MaxUsers    int32 `json:"max_users"`
}

// userTypeAttrs is the per-variant attribute table. Predicates are explicit
// data: two variants can share a rank yet differ in capabilities, so nothing
// here may be derived from rank.
type userTypeAttrs struct {
	rank                      int32
	isSystemAdmin             bool
	isPersonnel               bool
	isManager                 bool
	requiresAgency            bool
	canManageUsers            bool
	canCreateOrganizations    bool
	canAccessFinancialReports bool
	canProcessPayments        bool
	defaultLimits             ResourceLimits
}

var userTypeTable = map[UserType]userTypeAttrs{
	UserTypeSuperAdmin: {
		rank:                      100,
		isSystemAdmin:             true,
		isPersonnel:               true,
		isManager:                 true,
		canManageUsers:            true,
		canCreateOrganizations:    true,
		canAccessFinancialReports: true,
		canProcessPayments:        true,
		defaultLimits:             ResourceLimits{MaxAgencies: 1000, MaxVehicles: 100000, MaxDrivers: 100000, MaxUsers: 100000},
	},
	UserTypeSystemSupport: {
		rank:           90,
		isPersonnel:    true,
		canManageUsers: true,
	},
	UserTypeOrganizationOwner: {
		rank:                      80,
		isPersonnel:               true,
		isManager:                 true,
		canManageUsers:            true,
		canCreateOrganizations:    true,
		canAccessFinancialReports: true,
		canProcessPayments:        true,
		defaultLimits:             ResourceLimits{MaxAgencies: 5, MaxVehicles: 100, MaxDrivers: 100, MaxUsers: 50},
	},
	UserTypeOrganizationAdmin: {
		rank:                      70,
		isPersonnel:               true,
		isManager:                 true,
		canManageUsers:            true,
		canAccessFinancialReports: true,
	},
	UserTypeFleetManager: {
		rank:        60,
		isPersonnel: true,
		isManager:   true,
	},
	UserTypeAgencyManager: {
		rank:           50,
		isPersonnel:    true,
		isManager:      true,
		requiresAgency: true,
		canManageUsers: true,
	},
	UserTypeFinanceOfficer: {
		rank:                      50,
		isPersonnel:               true,
		canAccessFinancialReports: true,
		canProcessPayments:        true,
	},
	UserTypeRentalAgent: {
		rank:           40,
		isPersonnel:    true,
		requiresAgency: true,
	},
	UserTypeDriver: {
		rank:        20,
		isPersonnel: true,
	},
	UserTypeClient: {
		rank: 10,
	},
}

// AllUserTypes returns every variant, ordered by descending rank.
func AllUserTypes() []UserType {
	return []UserType{
		UserTypeSuperAdmin,
		UserTypeSystemSupport,
		UserTypeOrganizationOwner,
		UserTypeOrganizationAdmin,
		UserTypeFleetManager,
		UserTypeAgencyManager,
		UserTypeFinanceOfficer,
		UserTypeRentalAgent,
		UserTypeDriver,
		UserTypeClient,
	}
}

func (t UserType) IsValid() bool {
	_, ok := userTypeTable[t]
	return ok
}

// HierarchyLevel returns the numeric rank used for supervisory comparisons.
// Unknown types rank at zero, below every real variant.
func (t UserType) HierarchyLevel() int32 {
	return userTypeTable[t].rank
}

func (t UserType) IsSuperiorTo(other UserType) bool {
	return t.HierarchyLevel() > other.HierarchyLevel()
}

func (t UserType) IsInferiorTo(other UserType) bool {
	return t.HierarchyLevel() < other.HierarchyLevel()
}

func (t UserType) IsSameLevelAs(other UserType) bool {
	return t.HierarchyLevel() == other.HierarchyLevel()
}

// CanManage reports whether an actor of this type may manage a target of the
// given type. The top-rank admin type manages everyone including itself; no
// other type can manage the top-rank type. This asymmetry is a security
// boundary, not a rank comparison.
func (t UserType) CanManage(target UserType) bool {
	if t.IsSystemAdmin() {
		return true
	}
	if target.IsSystemAdmin() {
		return false
	}
	return t.IsSuperiorTo(target)
}

func (t UserType) IsSystemAdmin() bool {
	return userTypeTable[t].isSystemAdmin
}

func (t UserType) IsPersonnel() bool {
	return userTypeTable[t].isPersonnel
}

func (t UserType) IsManager() bool {
	return userTypeTable[t].isManager
}

// RequiresAgency reports whether users of this type are scoped to a single
// agency within their organization.
func (t UserType) RequiresAgency() bool {
	return userTypeTable[t].requiresAgency
}

func (t UserType) CanManageUsers() bool {
	return userTypeTable[t].canManageUsers
}

func (t UserType) CanCreateOrganizations() bool {
	return userTypeTable[t].canCreateOrganizations
}

func (t UserType) CanAccessFinancialReports() bool {
	return userTypeTable[t].canAccessFinancialReports
}

func (t UserType) CanProcessPayments() bool {
	return userTypeTable[t].canProcessPayments
}

// DefaultLimits returns the resource ceilings used when no subscription plan
// supplies them.
func (t UserType) DefaultLimits() ResourceLimits {
	return userTypeTable[t].defaultLimits
}
