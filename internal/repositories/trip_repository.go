package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tripColumns = `id, public_id, name, destination, description, trip_description, cover_image,
	start_date, end_date, arrival_date, return_date, deposit_date, final_payment,
	max_passengers, current_passengers, passenger_count,
	base_price, COALESCE(currency, 'USD'), trip_standard_level_pricing,
	trip_vendor, trip_vendor_id, vendor_terms, travel_business_used,
	travel_category, nights_total, lodging, lodging_notes, internal_trip_details,
	COALESCE(status, 'draft'), COALESCE(is_public, FALSE),
	birth_country, passenger_id, passenger_first_name, passenger_last_name,
	passenger_number, trip_id_custom, trip_name, is_child,
	ghl_opportunity_id, contact_id, created_at, updated_at`

type TripRepository struct {
	DB *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{DB: db}
}

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID, &t.PublicID, &t.Name, &t.Destination, &t.Description, &t.TripDescription, &t.CoverImage,
		&t.StartDate, &t.EndDate, &t.ArrivalDate, &t.ReturnDate, &t.DepositDate, &t.FinalPayment,
		&t.MaxPassengers, &t.CurrentPassengers, &t.PassengerCount,
		&t.BasePrice, &t.Currency, &t.TripStandardLevelPricing,
		&t.TripVendor, &t.TripVendorID, &t.VendorTerms, &t.TravelBusinessUsed,
		&t.TravelCategory, &t.NightsTotal, &t.Lodging, &t.LodgingNotes, &t.InternalTripDetails,
		&t.Status, &t.IsPublic,
		&t.BirthCountry, &t.PassengerID, &t.PassengerFirstName, &t.PassengerLastName,
		&t.PassengerNumber, &t.TripIDCustom, &t.TripName, &t.IsChild,
		&t.GHLOpportunityID, &t.ContactID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TripRepository) Create(ctx context.Context, t *models.Trip) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO trips(public_id, name, destination, description, trip_description, cover_image,
			start_date, end_date, arrival_date, return_date, deposit_date, final_payment,
			max_passengers, current_passengers, passenger_count,
			base_price, currency, trip_standard_level_pricing,
			trip_vendor, trip_vendor_id, vendor_terms, travel_business_used,
			travel_category, nights_total, lodging, lodging_notes, internal_trip_details,
			status, is_public,
			birth_country, passenger_id, passenger_first_name, passenger_last_name,
			passenger_number, trip_id_custom, trip_name, is_child,
			ghl_opportunity_id, contact_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39)
		 RETURNING id, created_at, updated_at`,
		t.PublicID, t.Name, t.Destination, t.Description, t.TripDescription, t.CoverImage,
		t.StartDate, t.EndDate, t.ArrivalDate, t.ReturnDate, t.DepositDate, t.FinalPayment,
		t.MaxPassengers, t.CurrentPassengers, t.PassengerCount,
		t.BasePrice, t.Currency, t.TripStandardLevelPricing,
		t.TripVendor, t.TripVendorID, t.VendorTerms, t.TravelBusinessUsed,
		t.TravelCategory, t.NightsTotal, t.Lodging, t.LodgingNotes, t.InternalTripDetails,
		t.Status, t.IsPublic,
		t.BirthCountry, t.PassengerID, t.PassengerFirstName, t.PassengerLastName,
		t.PassengerNumber, t.TripIDCustom, t.TripName, t.IsChild,
		t.GHLOpportunityID, t.ContactID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TripRepository) Get(ctx context.Context, id int) (*models.Trip, error) {
	return scanTrip(r.DB.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id=$1`, id))
}

func (r *TripRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Trip, error) {
	return scanTrip(r.DB.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE public_id=$1`, publicID))
}

func (r *TripRepository) GetByOpportunityID(ctx context.Context, opportunityID string) (*models.Trip, error) {
	return scanTrip(r.DB.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE ghl_opportunity_id=$1`, opportunityID))
}

func (r *TripRepository) List(ctx context.Context) ([]*models.Trip, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Update writes the full row back. The synchronizer loads a trip,
// merges decoded field values onto it and rewrites everything, so
// skipped fields keep their previous values.
func (r *TripRepository) Update(ctx context.Context, t *models.Trip) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE trips SET
			name=$1, destination=$2, description=$3, trip_description=$4, cover_image=$5,
			start_date=$6, end_date=$7, arrival_date=$8, return_date=$9, deposit_date=$10, final_payment=$11,
			max_passengers=$12, current_passengers=$13, passenger_count=$14,
			base_price=$15, currency=$16, trip_standard_level_pricing=$17,
			trip_vendor=$18, trip_vendor_id=$19, vendor_terms=$20, travel_business_used=$21,
			travel_category=$22, nights_total=$23, lodging=$24, lodging_notes=$25, internal_trip_details=$26,
			status=$27, is_public=$28,
			birth_country=$29, passenger_id=$30, passenger_first_name=$31, passenger_last_name=$32,
			passenger_number=$33, trip_id_custom=$34, trip_name=$35, is_child=$36,
			ghl_opportunity_id=$37, contact_id=$38, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$39`,
		t.Name, t.Destination, t.Description, t.TripDescription, t.CoverImage,
		t.StartDate, t.EndDate, t.ArrivalDate, t.ReturnDate, t.DepositDate, t.FinalPayment,
		t.MaxPassengers, t.CurrentPassengers, t.PassengerCount,
		t.BasePrice, t.Currency, t.TripStandardLevelPricing,
		t.TripVendor, t.TripVendorID, t.VendorTerms, t.TravelBusinessUsed,
		t.TravelCategory, t.NightsTotal, t.Lodging, t.LodgingNotes, t.InternalTripDetails,
		t.Status, t.IsPublic,
		t.BirthCountry, t.PassengerID, t.PassengerFirstName, t.PassengerLastName,
		t.PassengerNumber, t.TripIDCustom, t.TripName, t.IsChild,
		t.GHLOpportunityID, t.ContactID, t.ID)
	return err
}

func (r *TripRepository) SetOpportunityID(ctx context.Context, id int, opportunityID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE trips SET ghl_opportunity_id=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		opportunityID, id)
	return err
}

// Delete removes a trip; dependent passengers cascade at the schema
// level.
func (r *TripRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	return err
}
