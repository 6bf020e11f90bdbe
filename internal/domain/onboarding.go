package domain

import "time"

// Onboarding steps. A session advances monotonically from step 1 to
// completion; it never moves backwards.
const (
	OnboardingStepCreated   int32 = 1
	OnboardingStepOwnerInfo int32 = 2
	OnboardingStepOrgInfo   int32 = 3
	OnboardingMaxStep       int32 = 3
)

// OnboardingOwnerInfo is the step-2 payload: the future organization owner.
type OnboardingOwnerInfo struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	IDNumber  string `json:"id_number" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Password  string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// OnboardingOrgInfo is the step-3 payload: the organization to provision.
type OnboardingOrgInfo struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Country     string `json:"country,omitempty"`
}

// OnboardingSubscriptionInfo is the completion payload.
type OnboardingSubscriptionInfo struct {
	PlanID    int32 `json:"plan_id" validate:"required"`
	AutoRenew bool  `json:"auto_renew"`
}

// OnboardingSession accumulates the data needed to provision a new tenant
// before committing it as one logical unit. Version is an optimistic
// concurrency guard: every mutation is a compare-and-swap on (id, version).
// The Created* fields record sub-resources already provisioned by a previous
// Complete attempt so a retry dedupes instead of recreating.
type OnboardingSession struct {
	ID           int32      `json:"id"`
	SessionToken string     `json:"session_token"`
	CurrentStep  int32      `json:"current_step"`
	MaxStep      int32      `json:"max_step"`
	IsCompleted  bool       `json:"is_completed"`
	Version      int32      `json:"version"`
	ExpiresOn    time.Time  `json:"expires_on"`
	CompletedOn  *time.Time `json:"completed_on,omitempty"`

	OwnerInfo *OnboardingOwnerInfo `json:"owner_info,omitempty"`
	OrgInfo   *OnboardingOrgInfo   `json:"org_info,omitempty"`

	CreatedOrganizationID *int32 `json:"created_organization_id,omitempty"`
	CreatedOwnerUserID    *int32 `json:"created_owner_user_id,omitempty"`
	CreatedRoleID         *int32 `json:"created_role_id,omitempty"`
	CreatedSubscriptionID *int32 `json:"created_subscription_id,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// IsExpired reports whether the session has passed its expiry. Expired
// sessions are terminal: no step may be saved and completion is rejected.
func (s *OnboardingSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresOn)
}

// ReadyToComplete reports whether both data steps have been saved.
func (s *OnboardingSession) ReadyToComplete() bool {
	return s.CurrentStep >= OnboardingStepOrgInfo && s.OwnerInfo != nil && s.OrgInfo != nil
}
