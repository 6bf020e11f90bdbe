package postgres

import (
	"context"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateWithVersionSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)

	session := &domain.OnboardingSession{
		ID:          4,
		CurrentStep: domain.OnboardingStepOwnerInfo,
		Version:     2,
		OwnerInfo:   &domain.OnboardingOwnerInfo{Email: "ada@example.com"},
	}
	mock.ExpectExec(`UPDATE onboarding_sessions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateWithVersion(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, int32(3), session.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithVersionConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)

	session := &domain.OnboardingSession{ID: 4, Version: 2}
	mock.ExpectExec(`UPDATE onboarding_sessions`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWithVersion(context.Background(), session)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
	assert.Equal(t, int32(2), session.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredSkipsCompletedSessions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM onboarding_sessions WHERE NOT is_completed AND expires_on < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
