package models

import "time"

// Trip mirrors one TripBooking opportunity in GoHighLevel.
// GHLOpportunityID is null until the trip is first pushed.
type Trip struct {
	ID       int    `json:"id"`
	PublicID string `json:"public_id"`

	Name            *string `json:"name"`
	Destination     *string `json:"destination"`
	Description     *string `json:"description"`
	TripDescription *string `json:"trip_description"`
	CoverImage      *string `json:"cover_image"`

	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	ArrivalDate  *time.Time `json:"arrival_date"`
	ReturnDate   *time.Time `json:"return_date"`
	DepositDate  *time.Time `json:"deposit_date"`
	FinalPayment *time.Time `json:"final_payment"`

	MaxPassengers     *int `json:"max_passengers"`
	CurrentPassengers *int `json:"current_passengers"`
	PassengerCount    *int `json:"passenger_count"`

	BasePrice                *float64 `json:"base_price"`
	Currency                 string   `json:"currency"`
	TripStandardLevelPricing *float64 `json:"trip_standard_level_pricing"`

	TripVendor         *string `json:"trip_vendor"`
	TripVendorID       *int    `json:"trip_vendor_id"`
	VendorTerms        *string `json:"vendor_terms"`
	TravelBusinessUsed *string `json:"travel_business_used"`

	TravelCategory      *string `json:"travel_category"`
	NightsTotal         *int    `json:"nights_total"`
	Lodging             *string `json:"lodging"`
	LodgingNotes        *string `json:"lodging_notes"`
	InternalTripDetails *string `json:"internal_trip_details"`

	Status   string `json:"status"`
	IsPublic bool   `json:"is_public"`

	BirthCountry       *string `json:"birth_country"`
	PassengerID        *string `json:"passenger_id"`
	PassengerFirstName *string `json:"passenger_first_name"`
	PassengerLastName  *string `json:"passenger_last_name"`
	PassengerNumber    *int    `json:"passenger_number"`
	TripIDCustom       *int    `json:"trip_id_custom"`
	TripName           *string `json:"trip_name"`
	IsChild            *bool   `json:"is_child"`

	GHLOpportunityID *string `json:"ghl_opportunity_id"`
	ContactID        *string `json:"contact_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTripRequest represents the request body for creating a trip
type CreateTripRequest struct {
	Name           string   `json:"name"`
	Destination    string   `json:"destination"`
	Description    string   `json:"description"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	MaxPassengers  int      `json:"max_passengers"`
	BasePrice      *float64 `json:"base_price"`
	TripVendorID   *int     `json:"trip_vendor_id"`
	TravelCategory string   `json:"travel_category"`
	IsPublic       bool     `json:"is_public"`
}

// UpdateTripRequest represents the request body for updating a trip
type UpdateTripRequest struct {
	Name           *string  `json:"name"`
	Destination    *string  `json:"destination"`
	Description    *string  `json:"description"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	MaxPassengers  *int     `json:"max_passengers"`
	BasePrice      *float64 `json:"base_price"`
	TripVendorID   *int     `json:"trip_vendor_id"`
	TravelCategory *string  `json:"travel_category"`
	Status         *string  `json:"status"`
	IsPublic       *bool    `json:"is_public"`
}
