package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTypeTableCompleteness(t *testing.T) {
	types := AllUserTypes()
	assert.Len(t, types, 10)

	for _, ut := range types {
		assert.True(t, ut.IsValid(), "missing table entry for %s", ut)
		assert.Positive(t, ut.HierarchyLevel(), "rank must be positive for %s", ut)
	}

	assert.False(t, UserType("INTERN").IsValid())
}

func TestUserTypeRanks(t *testing.T) {
	expected := map[UserType]int32{
		UserTypeSuperAdmin:        100,
		UserTypeSystemSupport:     90,
		UserTypeOrganizationOwner: 80,
		UserTypeOrganizationAdmin: 70,
		UserTypeFleetManager:      60,
		UserTypeAgencyManager:     50,
		UserTypeFinanceOfficer:    50,
		UserTypeRentalAgent:       40,
		UserTypeDriver:            20,
		UserTypeClient:            10,
	}
	for ut, rank := range expected {
		assert.Equal(t, rank, ut.HierarchyLevel(), "rank of %s", ut)
	}
}

func TestUserTypeComparisons(t *testing.T) {
	assert.True(t, UserTypeOrganizationOwner.IsSuperiorTo(UserTypeClient))
	assert.True(t, UserTypeClient.IsInferiorTo(UserTypeDriver))
	assert.True(t, UserTypeAgencyManager.IsSameLevelAs(UserTypeFinanceOfficer))
	assert.False(t, UserTypeAgencyManager.IsSuperiorTo(UserTypeFinanceOfficer))
	assert.False(t, UserTypeAgencyManager.IsInferiorTo(UserTypeFinanceOfficer))
}

// The top-rank type manages everyone including itself; nobody else manages
// the top-rank type; otherwise management follows strict rank superiority.
func TestCanManageProperty(t *testing.T) {
	for _, actor := range AllUserTypes() {
		for _, target := range AllUserTypes() {
			got := actor.CanManage(target)

			var want bool
			switch {
			case actor == UserTypeSuperAdmin:
				want = true
			case target == UserTypeSuperAdmin:
				want = false
			default:
				want = actor.HierarchyLevel() > target.HierarchyLevel()
			}
			assert.Equal(t, want, got, "CanManage(%s, %s)", actor, target)
		}
	}
}

func TestCanManageTopRankBoundary(t *testing.T) {
	assert.True(t, UserTypeSuperAdmin.CanManage(UserTypeSuperAdmin))
	assert.False(t, UserTypeSystemSupport.CanManage(UserTypeSuperAdmin))
	assert.False(t, UserTypeOrganizationOwner.CanManage(UserTypeSuperAdmin))
}

// Equal-rank variants must still differ in predicates: predicates are table
// data, not derived from rank.
func TestEqualRankPredicateDivergence(t *testing.T) {
	require.True(t, UserTypeAgencyManager.IsSameLevelAs(UserTypeFinanceOfficer))

	assert.True(t, UserTypeAgencyManager.RequiresAgency())
	assert.False(t, UserTypeFinanceOfficer.RequiresAgency())

	assert.False(t, UserTypeAgencyManager.CanProcessPayments())
	assert.True(t, UserTypeFinanceOfficer.CanProcessPayments())
}

func TestUserTypePredicates(t *testing.T) {
	assert.True(t, UserTypeSuperAdmin.IsSystemAdmin())
	assert.False(t, UserTypeSystemSupport.IsSystemAdmin())

	assert.True(t, UserTypeRentalAgent.RequiresAgency())
	assert.False(t, UserTypeClient.IsPersonnel())
	assert.True(t, UserTypeDriver.IsPersonnel())

	assert.True(t, UserTypeOrganizationOwner.CanCreateOrganizations())
	assert.False(t, UserTypeOrganizationAdmin.CanCreateOrganizations())
	assert.True(t, UserTypeOrganizationAdmin.CanAccessFinancialReports())
}

func TestDefaultLimits(t *testing.T) {
	limits := UserTypeOrganizationOwner.DefaultLimits()
	assert.Positive(t, limits.MaxAgencies)
	assert.Positive(t, limits.MaxVehicles)
	assert.Positive(t, limits.MaxDrivers)
	assert.Positive(t, limits.MaxUsers)

	assert.Zero(t, UserTypeClient.DefaultLimits())
}
