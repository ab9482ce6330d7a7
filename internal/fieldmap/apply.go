package fieldmap

import (
	"time"

	"tripbuilder/internal/models"
)

// ApplyTripValues merges decoded column values onto a trip. Columns
// absent from the map keep their existing values, which is what makes
// skip-on-unparseable safe.
func ApplyTripValues(t *models.Trip, vals map[string]any) {
	for column, v := range vals {
		switch column {
		case "name":
			if s, ok := v.(string); ok {
				t.Name = &s
			}
		case "destination":
			if s, ok := v.(string); ok {
				t.Destination = &s
			}
		case "trip_description":
			if s, ok := v.(string); ok {
				t.TripDescription = &s
			}
		case "arrival_date":
			if d, ok := v.(time.Time); ok {
				t.ArrivalDate = &d
			}
		case "return_date":
			if d, ok := v.(time.Time); ok {
				t.ReturnDate = &d
			}
		case "deposit_date":
			if d, ok := v.(time.Time); ok {
				t.DepositDate = &d
			}
		case "final_payment":
			if d, ok := v.(time.Time); ok {
				t.FinalPayment = &d
			}
		case "max_passengers":
			if n, ok := v.(int); ok {
				t.MaxPassengers = &n
			}
		case "passenger_count":
			if n, ok := v.(int); ok {
				t.PassengerCount = &n
			}
		case "trip_standard_level_pricing":
			if f, ok := v.(float64); ok {
				t.TripStandardLevelPricing = &f
			}
		case "trip_vendor":
			if s, ok := v.(string); ok {
				t.TripVendor = &s
			}
		case "vendor_terms":
			if s, ok := v.(string); ok {
				t.VendorTerms = &s
			}
		case "travel_business_used":
			if s, ok := v.(string); ok {
				t.TravelBusinessUsed = &s
			}
		case "travel_category":
			if s, ok := v.(string); ok {
				t.TravelCategory = &s
			}
		case "nights_total":
			if n, ok := v.(int); ok {
				t.NightsTotal = &n
			}
		case "lodging":
			if s, ok := v.(string); ok {
				t.Lodging = &s
			}
		case "lodging_notes":
			if s, ok := v.(string); ok {
				t.LodgingNotes = &s
			}
		case "internal_trip_details":
			if s, ok := v.(string); ok {
				t.InternalTripDetails = &s
			}
		case "birth_country":
			if s, ok := v.(string); ok {
				t.BirthCountry = &s
			}
		case "passenger_id":
			if s, ok := v.(string); ok {
				t.PassengerID = &s
			}
		case "passenger_first_name":
			if s, ok := v.(string); ok {
				t.PassengerFirstName = &s
			}
		case "passenger_number":
			if n, ok := v.(int); ok {
				t.PassengerNumber = &n
			}
		case "trip_id_custom":
			if n, ok := v.(int); ok {
				t.TripIDCustom = &n
			}
		case "is_child":
			if b, ok := v.(bool); ok {
				t.IsChild = &b
			}
		}
	}
}

// TripFieldValues flattens a trip's mapped columns into the value map
// the codec encodes for push. Nil columns are omitted so the push
// never clears a CRM field.
func TripFieldValues(t *models.Trip) map[string]any {
	vals := make(map[string]any)

	putString(vals, "name", t.Name)
	putString(vals, "destination", t.Destination)
	putString(vals, "trip_description", t.TripDescription)
	putDate(vals, "arrival_date", t.ArrivalDate)
	putDate(vals, "return_date", t.ReturnDate)
	putDate(vals, "deposit_date", t.DepositDate)
	putDate(vals, "final_payment", t.FinalPayment)
	putInt(vals, "max_passengers", t.MaxPassengers)
	putInt(vals, "passenger_count", t.PassengerCount)
	putFloat(vals, "trip_standard_level_pricing", t.TripStandardLevelPricing)
	putString(vals, "trip_vendor", t.TripVendor)
	putString(vals, "vendor_terms", t.VendorTerms)
	putString(vals, "travel_business_used", t.TravelBusinessUsed)
	putString(vals, "travel_category", t.TravelCategory)
	putInt(vals, "nights_total", t.NightsTotal)
	putString(vals, "lodging", t.Lodging)
	putString(vals, "lodging_notes", t.LodgingNotes)
	putString(vals, "internal_trip_details", t.InternalTripDetails)
	putString(vals, "birth_country", t.BirthCountry)
	putString(vals, "passenger_id", t.PassengerID)
	putString(vals, "passenger_first_name", t.PassengerFirstName)
	putInt(vals, "passenger_number", t.PassengerNumber)
	putInt(vals, "trip_id_custom", t.TripIDCustom)
	putBool(vals, "is_child", t.IsChild)

	return vals
}

// ApplyPassengerValues merges decoded column values onto a passenger.
func ApplyPassengerValues(p *models.Passenger, vals map[string]any) {
	for column, v := range vals {
		switch column {
		case "trip_name":
			if s, ok := v.(string); ok {
				p.TripName = &s
			}
		case "firstname":
			if s, ok := v.(string); ok {
				p.FirstName = &s
			}
		case "lastname":
			if s, ok := v.(string); ok {
				p.LastName = &s
			}
		case "email":
			if s, ok := v.(string); ok {
				p.Email = &s
			}
		case "phone":
			if s, ok := v.(string); ok {
				p.Phone = &s
			}
		case "user_roomate":
			if s, ok := v.(string); ok {
				p.UserRoomate = &s
			}
		case "room_occupancy":
			if s, ok := v.(string); ok {
				p.RoomOccupancy = &s
			}
		case "passport_number":
			if s, ok := v.(string); ok {
				p.PassportNumber = &s
			}
		case "passport_expire":
			if d, ok := v.(time.Time); ok {
				p.PassportExpire = &d
			}
		case "passport_file":
			if s, ok := v.(string); ok {
				p.PassportFile = &s
			}
		case "passport_country":
			if s, ok := v.(string); ok {
				p.PassportCountry = &s
			}
		case "health_state":
			if s, ok := v.(string); ok {
				p.HealthState = &s
			}
		case "health_medical_info":
			if s, ok := v.(string); ok {
				p.HealthMedicalInfo = &s
			}
		case "primary_phy":
			if s, ok := v.(string); ok {
				p.PrimaryPhy = &s
			}
		case "physician_phone":
			if s, ok := v.(string); ok {
				p.PhysicianPhone = &s
			}
		case "medication_list":
			if s, ok := v.(string); ok {
				p.MedicationList = &s
			}
		case "contact1_ulast_name":
			if s, ok := v.(string); ok {
				p.Contact1ULastName = &s
			}
		case "contact1_ufirst_name":
			if s, ok := v.(string); ok {
				p.Contact1UFirstName = &s
			}
		case "contact1_urelationship":
			if s, ok := v.(string); ok {
				p.Contact1URelationship = &s
			}
		case "contact1_umailing_address":
			if s, ok := v.(string); ok {
				p.Contact1UMailingAddress = &s
			}
		case "contact1_ucity":
			if s, ok := v.(string); ok {
				p.Contact1UCity = &s
			}
		case "contact1_uzip":
			if s, ok := v.(string); ok {
				p.Contact1UZip = &s
			}
		case "contact1_uemail":
			if s, ok := v.(string); ok {
				p.Contact1UEmail = &s
			}
		case "contact1_uphone":
			if s, ok := v.(string); ok {
				p.Contact1UPhone = &s
			}
		case "contact1_umob_number":
			if s, ok := v.(string); ok {
				p.Contact1UMobNumber = &s
			}
		case "contact1_ustate":
			if s, ok := v.(string); ok {
				p.Contact1UState = &s
			}
		case "form_submitted_date":
			if d, ok := v.(time.Time); ok {
				p.FormSubmittedDate = &d
			}
		case "travel_category_license":
			if s, ok := v.(string); ok {
				p.TravelCategoryLicense = &s
			}
		case "passenger_signature":
			if s, ok := v.(string); ok {
				p.PassengerSignature = &s
			}
		case "reservation":
			if s, ok := v.(string); ok {
				p.Reservation = &s
			}
		case "mou":
			if s, ok := v.(string); ok {
				p.MOU = &s
			}
		case "affidavit":
			if s, ok := v.(string); ok {
				p.Affidavit = &s
			}
		}
	}
}

// PassengerFieldValues flattens a passenger's mapped columns for push.
func PassengerFieldValues(p *models.Passenger) map[string]any {
	vals := make(map[string]any)

	putString(vals, "trip_name", p.TripName)
	putString(vals, "firstname", p.FirstName)
	putString(vals, "lastname", p.LastName)
	putString(vals, "email", p.Email)
	putString(vals, "phone", p.Phone)
	putString(vals, "user_roomate", p.UserRoomate)
	putString(vals, "room_occupancy", p.RoomOccupancy)
	putString(vals, "passport_number", p.PassportNumber)
	putDate(vals, "passport_expire", p.PassportExpire)
	putString(vals, "passport_file", p.PassportFile)
	putString(vals, "passport_country", p.PassportCountry)
	putString(vals, "health_state", p.HealthState)
	putString(vals, "health_medical_info", p.HealthMedicalInfo)
	putString(vals, "primary_phy", p.PrimaryPhy)
	putString(vals, "physician_phone", p.PhysicianPhone)
	putString(vals, "medication_list", p.MedicationList)
	putString(vals, "contact1_ulast_name", p.Contact1ULastName)
	putString(vals, "contact1_ufirst_name", p.Contact1UFirstName)
	putString(vals, "contact1_urelationship", p.Contact1URelationship)
	putString(vals, "contact1_umailing_address", p.Contact1UMailingAddress)
	putString(vals, "contact1_ucity", p.Contact1UCity)
	putString(vals, "contact1_uzip", p.Contact1UZip)
	putString(vals, "contact1_uemail", p.Contact1UEmail)
	putString(vals, "contact1_uphone", p.Contact1UPhone)
	putString(vals, "contact1_umob_number", p.Contact1UMobNumber)
	putString(vals, "contact1_ustate", p.Contact1UState)
	putDate(vals, "form_submitted_date", p.FormSubmittedDate)
	putString(vals, "travel_category_license", p.TravelCategoryLicense)
	putString(vals, "passenger_signature", p.PassengerSignature)
	putString(vals, "reservation", p.Reservation)
	putString(vals, "mou", p.MOU)
	putString(vals, "affidavit", p.Affidavit)

	return vals
}

func putString(vals map[string]any, column string, v *string) {
	if v != nil {
		vals[column] = *v
	}
}

func putInt(vals map[string]any, column string, v *int) {
	if v != nil {
		vals[column] = *v
	}
}

func putFloat(vals map[string]any, column string, v *float64) {
	if v != nil {
		vals[column] = *v
	}
}

func putBool(vals map[string]any, column string, v *bool) {
	if v != nil {
		vals[column] = *v
	}
}

func putDate(vals map[string]any, column string, v *time.Time) {
	if v != nil {
		vals[column] = *v
	}
}
