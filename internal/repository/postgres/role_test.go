package postgres

import (
	"context"
	"database/sql"
	"testing"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreateSystemRoleIfAbsentInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	role := &domain.Role{
		Name:        domain.RoleNameSuperAdmin,
		Description: "Platform administrator",
		Priority:    1000,
		Permissions: domain.AllPermissionCodes(),
	}
	mock.ExpectQuery(`INSERT INTO roles`).
		WithArgs(role.Name, role.Description, domain.RoleTypeSystem, false,
			role.Priority, pq.Array(role.Permissions), role.Color, role.Icon, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(1)))

	created, err := repo.CreateSystemRoleIfAbsent(context.Background(), role)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int32(1), role.ID)
	assert.True(t, role.IsSystemRole)
	assert.Equal(t, domain.RoleTypeSystem, role.RoleType)
	assert.Nil(t, role.OrganizationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSystemRoleIfAbsentAlreadyExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	// The guarded INSERT ... SELECT inserts nothing when a matching system
	// role exists, so RETURNING yields no row.
	mock.ExpectQuery(`INSERT INTO roles`).WillReturnError(sql.ErrNoRows)

	created, err := repo.CreateSystemRoleIfAbsent(context.Background(), &domain.Role{
		Name:        domain.RoleNameSuperAdmin,
		Permissions: domain.AllPermissionCodes(),
	})
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleCreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`INSERT INTO roles`).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	orgID := int32(7)
	err := repo.Create(context.Background(), &domain.Role{
		OrganizationID: &orgID,
		Name:           "Dispatcher",
		RoleType:       domain.RoleTypeCustom,
		Permissions:    []string{domain.PermVehicleRead},
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}
