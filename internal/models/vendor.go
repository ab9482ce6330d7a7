package models

import "time"

// TripVendor is a vendor kept locally and mirrored into the
// opportunity.tripvendor dropdown in GHL.
type TripVendor struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateVendorRequest represents the request body for creating a vendor
type CreateVendorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
