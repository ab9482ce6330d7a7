package models

import "time"

// Passenger joins a Contact to a Trip. The primary key is the GHL
// Passenger opportunity id, so the record only exists once the
// opportunity exists in GoHighLevel.
type Passenger struct {
	ID string `json:"id"`

	FirstName   *string    `json:"firstname"`
	LastName    *string    `json:"lastname"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`

	Status                *string `json:"status"`
	RegistrationCompleted bool    `json:"registration_completed"`
	DocumentsCompleted    bool    `json:"documents_completed"`

	ContactID string  `json:"contact_id"`
	TripID    *int    `json:"trip_id"`
	StageID   *string `json:"stage_id"`

	Reservation *string `json:"reservation"`
	MOU         *string `json:"mou"`
	Affidavit   *string `json:"affidavit"`

	HealthState       *string `json:"health_state"`
	HealthMedicalInfo *string `json:"health_medical_info"`
	PrimaryPhy        *string `json:"primary_phy"`
	PhysicianPhone    *string `json:"physician_phone"`
	MedicationList    *string `json:"medication_list"`

	UserRoomate   *string `json:"user_roomate"`
	RoomOccupancy *string `json:"room_occupancy"`

	Contact1ULastName       *string `json:"contact1_ulast_name"`
	Contact1UFirstName      *string `json:"contact1_ufirst_name"`
	Contact1URelationship   *string `json:"contact1_urelationship"`
	Contact1UMailingAddress *string `json:"contact1_umailing_address"`
	Contact1UCity           *string `json:"contact1_ucity"`
	Contact1UZip            *string `json:"contact1_uzip"`
	Contact1UEmail          *string `json:"contact1_uemail"`
	Contact1UPhone          *string `json:"contact1_uphone"`
	Contact1UMobNumber      *string `json:"contact1_umob_number"`
	Contact1UState          *string `json:"contact1_ustate"`

	PassportNumber  *string    `json:"passport_number"`
	PassportExpire  *time.Time `json:"passport_expire"`
	PassportFile    *string    `json:"passport_file"`
	PassportCountry *string    `json:"passport_country"`

	FormSubmittedDate     *time.Time `json:"form_submitted_date"`
	TravelCategoryLicense *string    `json:"travel_category_license"`
	PassengerSignature    *string    `json:"passenger_signature"`

	// Denormalized trip name from GHL, used for trip linking when
	// TripID is not yet resolved.
	TripName *string `json:"trip_name"`

	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
}

// EnrollPassengerRequest represents the request body for enrolling a
// contact on a trip
type EnrollPassengerRequest struct {
	TripID    int    `json:"trip_id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// UpdatePassengerRequest represents the request body for updating
// passenger details collected by the enrollment forms
type UpdatePassengerRequest struct {
	Status                *string `json:"status"`
	HealthState           *string `json:"health_state"`
	HealthMedicalInfo     *string `json:"health_medical_info"`
	PrimaryPhy            *string `json:"primary_phy"`
	PhysicianPhone        *string `json:"physician_phone"`
	MedicationList        *string `json:"medication_list"`
	UserRoomate           *string `json:"user_roomate"`
	RoomOccupancy         *string `json:"room_occupancy"`
	PassportNumber        *string `json:"passport_number"`
	PassportExpire        *string `json:"passport_expire"`
	PassportCountry       *string `json:"passport_country"`
	Contact1ULastName     *string `json:"contact1_ulast_name"`
	Contact1UFirstName    *string `json:"contact1_ufirst_name"`
	Contact1URelationship *string `json:"contact1_urelationship"`
	Contact1UPhone        *string `json:"contact1_uphone"`
	Contact1UEmail        *string `json:"contact1_uemail"`
	TravelCategoryLicense *string `json:"travel_category_license"`
	PassengerSignature    *string `json:"passenger_signature"`
}
