package domain

import "time"

// Organization is a tenant. Usage counters and limits are maintained together:
// every child-resource creation goes through an atomic conditional increment
// at the storage layer, so current* <= max* holds under concurrency.
type Organization struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	OwnerID     int32  `json:"owner_id"`
	IsActive    bool   `json:"is_active"`

	PlanID                *int32     `json:"plan_id,omitempty"`
	SubscriptionExpiresOn *time.Time `json:"subscription_expires_on,omitempty"`
	AutoRenew             bool       `json:"auto_renew"`

	CurrentAgencies int32 `json:"current_agencies"`
	CurrentVehicles int32 `json:"current_vehicles"`
	CurrentDrivers  int32 `json:"current_drivers"`
	CurrentUsers    int32 `json:"current_users"`
	MaxAgencies     int32 `json:"max_agencies"`
	MaxVehicles     int32 `json:"max_vehicles"`
	MaxDrivers      int32 `json:"max_drivers"`
	MaxUsers        int32 `json:"max_users"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Limits returns the organization's resource ceilings.
func (o *Organization) Limits() ResourceLimits {
	return ResourceLimits{
		MaxAgencies: o.MaxAgencies,
		MaxVehicles: o.MaxVehicles,
		MaxDrivers:  o.MaxDrivers,
		MaxUsers:    o.MaxUsers,
	}
}

// SubscriptionExpired reports whether the organization's subscription has
// lapsed. Organizations without an expiry never lapse.
func (o *Organization) SubscriptionExpired(now time.Time) bool {
	return o.SubscriptionExpiresOn != nil && o.SubscriptionExpiresOn.Before(now)
}
