package jobs

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
)

// ExpireSubscriptions marks ACTIVE subscriptions whose period has ended as
// EXPIRED, in a single statement.
func (jr *JobRunner) ExpireSubscriptions() {
	jr.runWithRecovery("ExpireSubscriptions", func() {
		ctx := context.Background()

		expired, err := jr.store.SubscriptionRepository.MarkExpiredDue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire subscriptions", "error", err)
			return
		}
		logger.Info("Expired due subscriptions", "count", expired)
	})
}

// SendSubscriptionExpiryReminders emails organization owners whose
// subscription expires within the next week.
func (jr *JobRunner) SendSubscriptionExpiryReminders() {
	jr.runWithRecovery("SendSubscriptionExpiryReminders", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, 7)
		expiring, err := jr.store.SubscriptionRepository.ListExpiring(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list expiring subscriptions", "error", err)
			return
		}

		sent := 0
		for _, sub := range expiring {
			if sub.Status != domain.SubscriptionStatusActive {
				continue
			}
			org, err := jr.store.OrganizationRepository.GetByID(ctx, sub.OrganizationID)
			if err != nil {
				logger.Error("Failed to load organization for reminder", "org_id", sub.OrganizationID, "error", err)
				continue
			}
			owner, err := jr.store.UserRepository.GetByID(ctx, org.OwnerID)
			if err != nil {
				logger.Error("Failed to load owner for reminder", "org_id", org.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendSubscriptionExpiryReminder(ctx, owner.Email, org.Name, sub.ExpiresOn); err != nil {
				logger.Error("Failed to send expiry reminder", "email", owner.Email, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent subscription expiry reminders", "count", sent)
	})
}
