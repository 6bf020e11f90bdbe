package domain

import "time"

type Driver struct {
	ID             int32      `json:"id"`
	OrganizationID int32      `json:"organization_id"`
	AgencyID       *int32     `json:"agency_id,omitempty"`
	UserID         *int32     `json:"user_id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	LicenseNumber  string     `json:"license_number"`
	LicenseExpires *time.Time `json:"license_expires,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
}
