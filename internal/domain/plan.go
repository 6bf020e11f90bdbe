package domain

import "time"

// SubscriptionPlan is a catalog entry. Immutable after creation except for
// admin curation (activation flag, popularity flag).
type SubscriptionPlan struct {
	ID           int32           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	PriceCents   int32           `json:"price_cents"`
	Currency     string          `json:"currency"`
	DurationDays int32           `json:"duration_days"`
	MaxAgencies  int32           `json:"max_agencies"`
	MaxVehicles  int32           `json:"max_vehicles"`
	MaxDrivers   int32           `json:"max_drivers"`
	MaxUsers     int32           `json:"max_users"`
	Features     map[string]bool `json:"features,omitempty"`
	IsActive     bool            `json:"is_active"`
	IsPopular    bool            `json:"is_popular"`
	CreatedOn    time.Time       `json:"created_on"`
}

// Limits returns the plan's resource ceilings, used to seed a new
// organization's limits at onboarding.
func (p *SubscriptionPlan) Limits() ResourceLimits {
	return ResourceLimits{
		MaxAgencies: p.MaxAgencies,
		MaxVehicles: p.MaxVehicles,
		MaxDrivers:  p.MaxDrivers,
		MaxUsers:    p.MaxUsers,
	}
}

// HasFeature reports whether the plan enables the named feature flag.
func (p *SubscriptionPlan) HasFeature(name string) bool {
	return p.Features[name]
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// OrganizationSubscription links an organization to a plan for a period.
type OrganizationSubscription struct {
	ID             int32              `json:"id"`
	OrganizationID int32              `json:"organization_id"`
	PlanID         int32              `json:"plan_id"`
	StartsOn       time.Time          `json:"starts_on"`
	ExpiresOn      time.Time          `json:"expires_on"`
	AutoRenew      bool               `json:"auto_renew"`
	Status         SubscriptionStatus `json:"status"`
	CreatedOn      time.Time          `json:"created_on"`
}
