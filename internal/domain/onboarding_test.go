package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnboardingSessionExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := &OnboardingSession{ExpiresOn: now.Add(time.Hour)}
	assert.False(t, s.IsExpired(now))

	s.ExpiresOn = now.Add(-time.Minute)
	assert.True(t, s.IsExpired(now))

	s.ExpiresOn = now
	assert.False(t, s.IsExpired(now), "expiry instant itself is still valid")
}

func TestReadyToComplete(t *testing.T) {
	owner := &OnboardingOwnerInfo{FirstName: "Ada", LastName: "Diallo", Email: "ada@example.com"}
	org := &OnboardingOrgInfo{Name: "Diallo Rentals"}

	s := &OnboardingSession{CurrentStep: OnboardingStepCreated}
	assert.False(t, s.ReadyToComplete())

	s.CurrentStep = OnboardingStepOwnerInfo
	s.OwnerInfo = owner
	assert.False(t, s.ReadyToComplete())

	s.CurrentStep = OnboardingStepOrgInfo
	s.OrgInfo = org
	assert.True(t, s.ReadyToComplete())

	s.OwnerInfo = nil
	assert.False(t, s.ReadyToComplete(), "step counter alone is not enough")
}
