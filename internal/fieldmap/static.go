package fieldmap

// ValueType is the local semantic type of a mapped column. It may
// differ from the CRM's declared type (a CRM TEXT field can land in a
// local date column).
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeInteger ValueType = "integer"
	TypeDecimal ValueType = "decimal"
	TypeDate    ValueType = "date"
	TypeBoolean ValueType = "boolean"
)

// Target tables for mapped custom fields.
const (
	TableTrips      = "trips"
	TablePassengers = "passengers"
)

// Mapping routes one CRM field key to a local column.
type Mapping struct {
	FieldKey string
	Table    string
	Column   string
	Type     ValueType
}

// tripMappings routes TripBooking opportunity custom fields onto the
// trips table. This table is the approval gate: fields absent here are
// never persisted, whatever the CRM defines.
var tripMappings = []Mapping{
	{"opportunity.tripname", TableTrips, "name", TypeString},
	{"opportunity.destination", TableTrips, "destination", TypeString},
	{"opportunity.tripdescription", TableTrips, "trip_description", TypeString},

	{"opportunity.arrivaldate", TableTrips, "arrival_date", TypeDate},
	{"opportunity.returndate", TableTrips, "return_date", TypeDate},
	{"opportunity.depositdate", TableTrips, "deposit_date", TypeDate},
	{"opportunity.finalpayment", TableTrips, "final_payment", TypeDate},

	{"opportunity.maxpassengers", TableTrips, "max_passengers", TypeInteger},
	{"opportunity.passengercount", TableTrips, "passenger_count", TypeInteger},

	{"opportunity.tripstandardlevelpricing", TableTrips, "trip_standard_level_pricing", TypeDecimal},

	{"opportunity.tripvendor", TableTrips, "trip_vendor", TypeString},
	{"opportunity.vendorterms", TableTrips, "vendor_terms", TypeString},
	{"opportunity.travelbusinessused", TableTrips, "travel_business_used", TypeString},

	{"opportunity.travelcategory", TableTrips, "travel_category", TypeString},
	{"opportunity.nights", TableTrips, "nights_total", TypeInteger},
	{"opportunity.lodging", TableTrips, "lodging", TypeString},
	{"opportunity.lodgingnotes", TableTrips, "lodging_notes", TypeString},
	{"opportunity.internaltripdetails", TableTrips, "internal_trip_details", TypeString},

	{"opportunity.birthcountry", TableTrips, "birth_country", TypeString},
	{"opportunity.passengerid", TableTrips, "passenger_id", TypeString},
	{"opportunity.passengername", TableTrips, "passenger_first_name", TypeString},
	{"opportunity.passengernumber", TableTrips, "passenger_number", TypeInteger},
	{"opportunity.tripid", TableTrips, "trip_id_custom", TypeInteger},
	{"opportunity.ischild", TableTrips, "is_child", TypeBoolean},
}

// passengerMappings routes Passenger opportunity custom fields onto
// the passengers table. The contact.* keys are denormalized copies of
// contact basics kept on the passenger record.
var passengerMappings = []Mapping{
	{"opportunity.tripname", TablePassengers, "trip_name", TypeString},

	{"contact.firstname", TablePassengers, "firstname", TypeString},
	{"contact.lastname", TablePassengers, "lastname", TypeString},
	{"contact.email", TablePassengers, "email", TypeString},
	{"contact.phone", TablePassengers, "phone", TypeString},

	{"opportunity.userroomate", TablePassengers, "user_roomate", TypeString},
	{"opportunity.roomoccupancy", TablePassengers, "room_occupancy", TypeString},

	{"opportunity.passportnumber", TablePassengers, "passport_number", TypeString},
	{"opportunity.passportexpire", TablePassengers, "passport_expire", TypeDate},
	{"opportunity.passportfile", TablePassengers, "passport_file", TypeString},
	{"opportunity.passportcountry", TablePassengers, "passport_country", TypeString},

	{"opportunity.healthstate", TablePassengers, "health_state", TypeString},
	{"opportunity.healthmedicalinfo", TablePassengers, "health_medical_info", TypeString},
	{"opportunity.primaryphy", TablePassengers, "primary_phy", TypeString},
	{"opportunity.physicianphone", TablePassengers, "physician_phone", TypeString},
	{"opportunity.medicationlist", TablePassengers, "medication_list", TypeString},

	{"opportunity.contact1ulastname", TablePassengers, "contact1_ulast_name", TypeString},
	{"opportunity.contact1ufirstname", TablePassengers, "contact1_ufirst_name", TypeString},
	{"opportunity.contact1urelationship", TablePassengers, "contact1_urelationship", TypeString},
	{"opportunity.contact1umailingaddress", TablePassengers, "contact1_umailing_address", TypeString},
	{"opportunity.contact1ucity", TablePassengers, "contact1_ucity", TypeString},
	{"opportunity.contact1uzip", TablePassengers, "contact1_uzip", TypeString},
	{"opportunity.contact1uemail", TablePassengers, "contact1_uemail", TypeString},
	{"opportunity.contact1uphone", TablePassengers, "contact1_uphone", TypeString},
	{"opportunity.contact1umobnumber", TablePassengers, "contact1_umob_number", TypeString},
	{"opportunity.contact1ustate", TablePassengers, "contact1_ustate", TypeString},

	{"opportunity.formsubmitteddate", TablePassengers, "form_submitted_date", TypeDate},
	{"opportunity.travelcategorylicense", TablePassengers, "travel_category_license", TypeString},
	{"opportunity.passengersignature", TablePassengers, "passenger_signature", TypeString},

	{"opportunity.reservation", TablePassengers, "reservation", TypeString},
	{"opportunity.mou", TablePassengers, "mou", TypeString},
	{"opportunity.affidavit", TablePassengers, "affidavit", TypeString},
}
