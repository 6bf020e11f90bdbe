package domain

import "time"

// Agency is a branch of an organization. Agency-restricted actors see only
// resources belonging to their agency.
type Agency struct {
	ID             int32     `json:"id"`
	OrganizationID int32     `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}
