package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleMutability(t *testing.T) {
	system := &Role{RoleType: RoleTypeSystem, IsSystemRole: true}
	assert.False(t, system.CanBeModified())
	assert.False(t, system.CanBeDeleted())

	defaultRole := &Role{RoleType: RoleTypePredefined, IsDefaultRole: true}
	assert.True(t, defaultRole.CanBeModified())
	assert.False(t, defaultRole.CanBeDeleted())

	custom := &Role{RoleType: RoleTypeCustom}
	assert.True(t, custom.CanBeModified())
	assert.True(t, custom.CanBeDeleted())
}

func TestRoleHasPermission(t *testing.T) {
	role := &Role{Permissions: []string{PermVehicleRead, PermRentalCreate}}
	assert.True(t, role.HasPermission(PermVehicleRead))
	assert.False(t, role.HasPermission(PermVehicleDelete))
}

func TestDefaultClientPermissionsAreCatalogued(t *testing.T) {
	perms := DefaultClientPermissions()
	assert.ElementsMatch(t, []string{
		PermVehicleRead,
		PermRentalRead,
		PermRentalCreate,
		PermUserRead,
		PermUserUpdate,
	}, perms)

	for _, code := range perms {
		_, ok := LookupPermission(code)
		assert.True(t, ok, "default client permission %s must exist in the catalog", code)
	}
}
