package models

import "time"

// Contact is a local cache of a GoHighLevel contact.
// The primary key is the GHL contact id.
type Contact struct {
	ID           string            `json:"id"`
	FirstName    *string           `json:"firstname"`
	LastName     *string           `json:"lastname"`
	Email        *string           `json:"email"`
	Phone        *string           `json:"phone"`
	Address      *string           `json:"address"`
	City         *string           `json:"city"`
	State        *string           `json:"state"`
	PostalCode   *string           `json:"postal_code"`
	Country      *string           `json:"country"`
	CompanyName  *string           `json:"company_name"`
	Website      *string           `json:"website"`
	Tags         []string          `json:"tags"`
	Source       *string           `json:"source"`
	CustomFields map[string]string `json:"custom_fields"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	LastSyncedAt *time.Time        `json:"last_synced_at"`
}

// CreateContactRequest represents the request body for creating a contact
type CreateContactRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
