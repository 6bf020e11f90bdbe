package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementUsageClaimsSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectExec(`UPDATE organizations SET current_users = current_users \+ 1`).
		WithArgs(int32(9), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.IncrementUsage(context.Background(), 9, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsageAtCapacity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	// The conditional update matches no row when the counter is at its limit.
	mock.ExpectExec(`UPDATE organizations SET current_agencies = current_agencies \+ 1`).
		WithArgs(int32(9), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.IncrementUsage(context.Background(), 9, "agency")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsageRejectsUnknownResource(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewOrganizationRepository(db)

	_, err := repo.IncrementUsage(context.Background(), 9, "spaceship")
	assert.Error(t, err)
}
