package service

import (
	"context"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRoleService(roleRepo *MockRoleRepo, grantRepo *MockUserRoleRepo, now time.Time) *roleService {
	return &roleService{
		roleRepo:  roleRepo,
		grantRepo: grantRepo,
		now:       func() time.Time { return now },
	}
}

func TestBootstrapSystemRoles(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	grantRepo := new(MockUserRoleRepo)
	svc := newRoleService(roleRepo, grantRepo, time.Now())

	roleRepo.On("CreateSystemRoleIfAbsent", mock.Anything, mock.MatchedBy(func(r *domain.Role) bool {
		return r.Name == domain.RoleNameSuperAdmin && !r.IsDefaultRole
	})).Return(true, nil)
	roleRepo.On("CreateSystemRoleIfAbsent", mock.Anything, mock.MatchedBy(func(r *domain.Role) bool {
		return r.Name == domain.RoleNameDefaultClient && r.IsDefaultRole
	})).Return(true, nil)

	err := svc.BootstrapSystemRoles(context.Background())
	require.NoError(t, err)
	roleRepo.AssertNumberOfCalls(t, "CreateSystemRoleIfAbsent", 2)
}

func TestBootstrapSystemRolesIdempotent(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	grantRepo := new(MockUserRoleRepo)
	svc := newRoleService(roleRepo, grantRepo, time.Now())

	// The second run finds both roles already present and creates nothing.
	roleRepo.On("CreateSystemRoleIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Twice()
	roleRepo.On("CreateSystemRoleIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Twice()

	require.NoError(t, svc.BootstrapSystemRoles(context.Background()))
	require.NoError(t, svc.BootstrapSystemRoles(context.Background()))
	roleRepo.AssertNumberOfCalls(t, "CreateSystemRoleIfAbsent", 4)
}

func TestBootstrapSuperAdminHoldsFullCatalog(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	grantRepo := new(MockUserRoleRepo)
	svc := newRoleService(roleRepo, grantRepo, time.Now())

	var superAdmin, client *domain.Role
	roleRepo.On("CreateSystemRoleIfAbsent", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		r := args.Get(1).(*domain.Role)
		if r.IsDefaultRole {
			client = r
		} else {
			superAdmin = r
		}
	}).Return(true, nil)

	require.NoError(t, svc.BootstrapSystemRoles(context.Background()))
	require.NotNil(t, superAdmin)
	require.NotNil(t, client)

	assert.ElementsMatch(t, domain.AllPermissionCodes(), superAdmin.Permissions)
	assert.ElementsMatch(t, domain.DefaultClientPermissions(), client.Permissions)
	assert.Greater(t, superAdmin.Priority, client.Priority)
}

func TestCreateRoleRejectsSystemType(t *testing.T) {
	svc := newRoleService(new(MockRoleRepo), new(MockUserRoleRepo), time.Now())
	orgID := int32(7)

	_, err := svc.CreateRole(context.Background(), "Ops", &orgID, nil, domain.RoleTypeSystem)
	assert.ErrorIs(t, err, ErrSystemRoleReserved)
}

func TestCreateRoleRequiresOrganization(t *testing.T) {
	svc := newRoleService(new(MockRoleRepo), new(MockUserRoleRepo), time.Now())

	_, err := svc.CreateRole(context.Background(), "Ops", nil, nil, domain.RoleTypeCustom)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoleRejectsUnknownPermission(t *testing.T) {
	svc := newRoleService(new(MockRoleRepo), new(MockUserRoleRepo), time.Now())
	orgID := int32(7)

	_, err := svc.CreateRole(context.Background(), "Ops", &orgID, []string{"vehicle:teleport"}, domain.RoleTypeCustom)
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestCreateRole(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	svc := newRoleService(roleRepo, new(MockUserRoleRepo), time.Now())
	orgID := int32(7)

	roleRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Role) bool {
		return r.Name == "Ops" && r.RoleType == domain.RoleTypeCustom && *r.OrganizationID == orgID
	})).Return(nil)

	role, err := svc.CreateRole(context.Background(), "Ops", &orgID, []string{domain.PermVehicleRead}, domain.RoleTypeCustom)
	require.NoError(t, err)
	assert.Equal(t, "Ops", role.Name)
	roleRepo.AssertExpectations(t)
}

func TestAssignPermissionsSystemRoleGuard(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	svc := newRoleService(roleRepo, new(MockUserRoleRepo), time.Now())

	system := &domain.Role{ID: 1, RoleType: domain.RoleTypeSystem, IsSystemRole: true}
	roleRepo.On("GetByID", mock.Anything, int32(1)).Return(system, nil)

	tenant := &domain.User{ID: 5, UserType: domain.UserTypeOrganizationOwner}
	_, err := svc.AssignPermissions(context.Background(), tenant, 1, []string{domain.PermVehicleRead})
	assert.ErrorIs(t, err, ErrRoleImmutable)

	// A system admin may edit system roles.
	roleRepo.On("Update", mock.Anything, system).Return(nil)
	admin := &domain.User{ID: 1, UserType: domain.UserTypeSuperAdmin}
	updated, err := svc.AssignPermissions(context.Background(), admin, 1, []string{domain.PermVehicleRead})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.PermVehicleRead}, updated.Permissions)
}

func TestDeleteRoleProtections(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	svc := newRoleService(roleRepo, new(MockUserRoleRepo), time.Now())
	admin := &domain.User{ID: 1, UserType: domain.UserTypeSuperAdmin}

	roleRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.Role{ID: 1, IsSystemRole: true}, nil)
	assert.ErrorIs(t, svc.DeleteRole(context.Background(), admin, 1), ErrRoleProtected)

	roleRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.Role{ID: 2, IsDefaultRole: true}, nil)
	assert.ErrorIs(t, svc.DeleteRole(context.Background(), admin, 2), ErrRoleProtected)
}

func TestDeleteRoleOrganizationScope(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	svc := newRoleService(roleRepo, new(MockUserRoleRepo), time.Now())

	roleOrg := int32(7)
	otherOrg := int32(9)
	role := &domain.Role{ID: 3, OrganizationID: &roleOrg, RoleType: domain.RoleTypeCustom}
	roleRepo.On("GetByID", mock.Anything, int32(3)).Return(role, nil)

	outsider := &domain.User{ID: 4, UserType: domain.UserTypeOrganizationOwner, OrganizationID: &otherOrg}
	assert.ErrorIs(t, svc.DeleteRole(context.Background(), outsider, 3), ErrForbidden)

	roleRepo.On("Delete", mock.Anything, int32(3)).Return(nil)
	insider := &domain.User{ID: 5, UserType: domain.UserTypeOrganizationOwner, OrganizationID: &roleOrg}
	assert.NoError(t, svc.DeleteRole(context.Background(), insider, 3))
}

func TestGrantRejectsPastExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newRoleService(new(MockRoleRepo), new(MockUserRoleRepo), now)

	past := now.Add(-time.Minute)
	_, err := svc.Grant(context.Background(), 1, 2, nil, nil, &past, 9)
	assert.ErrorIs(t, err, ErrGrantExpiryInPast)
}

func TestGrantAndRevoke(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	roleRepo := new(MockRoleRepo)
	grantRepo := new(MockUserRoleRepo)
	svc := newRoleService(roleRepo, grantRepo, now)

	roleRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.Role{ID: 2}, nil)
	grantRepo.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.UserRole) bool {
		return g.UserID == 1 && g.RoleID == 2 && g.AssignedBy == 9 && g.IsActive && g.AssignedOn.Equal(now)
	})).Return(nil)

	grant, err := svc.Grant(context.Background(), 1, 2, nil, nil, nil, 9)
	require.NoError(t, err)
	assert.True(t, grant.IsActive)

	grantRepo.On("Revoke", mock.Anything, grant.ID, int32(9), now).Return(nil)
	assert.NoError(t, svc.Revoke(context.Background(), grant.ID, 9))
	grantRepo.AssertExpectations(t)
}

// The same user may hold the same role under different organization scopes;
// the write path never dedupes, and both grants stay effective.
func TestGrantSameRoleInTwoOrganizations(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	roleRepo := new(MockRoleRepo)
	grantRepo := new(MockUserRoleRepo)
	svc := newRoleService(roleRepo, grantRepo, now)

	roleRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.Role{ID: 2}, nil)

	var created []domain.UserRole
	nextID := int32(0)
	grantRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UserRole")).Run(func(args mock.Arguments) {
		g := args.Get(1).(*domain.UserRole)
		nextID++
		g.ID = nextID
		created = append(created, *g)
	}).Return(nil)

	first, err := svc.Grant(context.Background(), 1, 2, int32p(3), nil, nil, 9)
	require.NoError(t, err)
	second, err := svc.Grant(context.Background(), 1, 2, int32p(4), nil, nil, 9)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	grantRepo.AssertNumberOfCalls(t, "Create", 2)

	grantRepo.On("ListEffectiveByUser", mock.Anything, int32(1), now).Return(created, nil)
	effective, err := svc.ListEffective(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, effective, 2)
	assert.Equal(t, int32(3), *effective[0].OrganizationID)
	assert.Equal(t, int32(4), *effective[1].OrganizationID)
}

func TestGrantUnknownRole(t *testing.T) {
	roleRepo := new(MockRoleRepo)
	svc := newRoleService(roleRepo, new(MockUserRoleRepo), time.Now())

	roleRepo.On("GetByID", mock.Anything, int32(404)).Return(nil, repository.ErrNotFound)
	_, err := svc.Grant(context.Background(), 1, 404, nil, nil, nil, 9)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListEffectiveUsesClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	grantRepo := new(MockUserRoleRepo)
	svc := newRoleService(new(MockRoleRepo), grantRepo, now)

	grantRepo.On("ListEffectiveByUser", mock.Anything, int32(1), now).Return([]domain.UserRole{{ID: 10}}, nil)

	grants, err := svc.ListEffective(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, grants, 1)
	grantRepo.AssertExpectations(t)
}
