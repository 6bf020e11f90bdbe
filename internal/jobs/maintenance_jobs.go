package jobs

import (
	"context"
	"time"

	"fleetrent-backend/internal/logger"
)

// PurgeExpiredOnboardingSessions deletes abandoned onboarding sessions that
// passed their expiry without completing. Completed sessions are kept as an
// audit trail of tenant provisioning.
func (jr *JobRunner) PurgeExpiredOnboardingSessions() {
	jr.runWithRecovery("PurgeExpiredOnboardingSessions", func() {
		ctx := context.Background()

		deleted, err := jr.store.OnboardingRepository.DeleteExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to purge expired onboarding sessions", "error", err)
			return
		}
		logger.Info("Purged expired onboarding sessions", "count", deleted)
	})
}

// CleanupRevokedRoleGrants removes revoked role assignments older than the
// retention window. Active and merely-expired grants are untouched.
func (jr *JobRunner) CleanupRevokedRoleGrants() {
	jr.runWithRecovery("CleanupRevokedRoleGrants", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, -6, 0)
		deleted, err := jr.store.UserRoleRepository.DeleteRevokedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to clean up revoked role grants", "error", err)
			return
		}
		logger.Info("Cleaned up revoked role grants", "count", deleted, "cutoff", cutoff.Format("2006-01-02"))
	})
}
