package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const passengerColumns = `id, firstname, lastname, email, phone, date_of_birth, gender,
	status, COALESCE(registration_completed, FALSE), COALESCE(documents_completed, FALSE),
	contact_id, trip_id, stage_id,
	reservation, mou, affidavit,
	health_state, health_medical_info, primary_phy, physician_phone, medication_list,
	user_roomate, room_occupancy,
	contact1_ulast_name, contact1_ufirst_name, contact1_urelationship,
	contact1_umailing_address, contact1_ucity, contact1_uzip, contact1_uemail,
	contact1_uphone, contact1_umob_number, contact1_ustate,
	passport_number, passport_expire, passport_file, passport_country,
	form_submitted_date, travel_category_license, passenger_signature,
	trip_name, created_at, updated_at, last_synced_at`

type PassengerRepository struct {
	DB *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) *PassengerRepository {
	return &PassengerRepository{DB: db}
}

func scanPassenger(row pgx.Row) (*models.Passenger, error) {
	var p models.Passenger
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DateOfBirth, &p.Gender,
		&p.Status, &p.RegistrationCompleted, &p.DocumentsCompleted,
		&p.ContactID, &p.TripID, &p.StageID,
		&p.Reservation, &p.MOU, &p.Affidavit,
		&p.HealthState, &p.HealthMedicalInfo, &p.PrimaryPhy, &p.PhysicianPhone, &p.MedicationList,
		&p.UserRoomate, &p.RoomOccupancy,
		&p.Contact1ULastName, &p.Contact1UFirstName, &p.Contact1URelationship,
		&p.Contact1UMailingAddress, &p.Contact1UCity, &p.Contact1UZip, &p.Contact1UEmail,
		&p.Contact1UPhone, &p.Contact1UMobNumber, &p.Contact1UState,
		&p.PassportNumber, &p.PassportExpire, &p.PassportFile, &p.PassportCountry,
		&p.FormSubmittedDate, &p.TravelCategoryLicense, &p.PassengerSignature,
		&p.TripName, &p.CreatedAt, &p.UpdatedAt, &p.LastSyncedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes the full passenger row keyed on the opportunity id.
// Both the pull sync and the enrollment flow go through here.
func (r *PassengerRepository) Upsert(ctx context.Context, p *models.Passenger) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO passengers(id, firstname, lastname, email, phone, date_of_birth, gender,
			status, registration_completed, documents_completed,
			contact_id, trip_id, stage_id,
			reservation, mou, affidavit,
			health_state, health_medical_info, primary_phy, physician_phone, medication_list,
			user_roomate, room_occupancy,
			contact1_ulast_name, contact1_ufirst_name, contact1_urelationship,
			contact1_umailing_address, contact1_ucity, contact1_uzip, contact1_uemail,
			contact1_uphone, contact1_umob_number, contact1_ustate,
			passport_number, passport_expire, passport_file, passport_country,
			form_submitted_date, travel_category_license, passenger_signature,
			trip_name, last_synced_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39,$40,
			$41,CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET
			firstname=EXCLUDED.firstname, lastname=EXCLUDED.lastname,
			email=EXCLUDED.email, phone=EXCLUDED.phone,
			date_of_birth=EXCLUDED.date_of_birth, gender=EXCLUDED.gender,
			status=EXCLUDED.status,
			registration_completed=EXCLUDED.registration_completed,
			documents_completed=EXCLUDED.documents_completed,
			contact_id=EXCLUDED.contact_id, trip_id=EXCLUDED.trip_id, stage_id=EXCLUDED.stage_id,
			reservation=EXCLUDED.reservation, mou=EXCLUDED.mou, affidavit=EXCLUDED.affidavit,
			health_state=EXCLUDED.health_state, health_medical_info=EXCLUDED.health_medical_info,
			primary_phy=EXCLUDED.primary_phy, physician_phone=EXCLUDED.physician_phone,
			medication_list=EXCLUDED.medication_list,
			user_roomate=EXCLUDED.user_roomate, room_occupancy=EXCLUDED.room_occupancy,
			contact1_ulast_name=EXCLUDED.contact1_ulast_name,
			contact1_ufirst_name=EXCLUDED.contact1_ufirst_name,
			contact1_urelationship=EXCLUDED.contact1_urelationship,
			contact1_umailing_address=EXCLUDED.contact1_umailing_address,
			contact1_ucity=EXCLUDED.contact1_ucity, contact1_uzip=EXCLUDED.contact1_uzip,
			contact1_uemail=EXCLUDED.contact1_uemail, contact1_uphone=EXCLUDED.contact1_uphone,
			contact1_umob_number=EXCLUDED.contact1_umob_number,
			contact1_ustate=EXCLUDED.contact1_ustate,
			passport_number=EXCLUDED.passport_number, passport_expire=EXCLUDED.passport_expire,
			passport_file=EXCLUDED.passport_file, passport_country=EXCLUDED.passport_country,
			form_submitted_date=EXCLUDED.form_submitted_date,
			travel_category_license=EXCLUDED.travel_category_license,
			passenger_signature=EXCLUDED.passenger_signature,
			trip_name=EXCLUDED.trip_name,
			updated_at=CURRENT_TIMESTAMP, last_synced_at=CURRENT_TIMESTAMP`,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Gender,
		p.Status, p.RegistrationCompleted, p.DocumentsCompleted,
		p.ContactID, p.TripID, p.StageID,
		p.Reservation, p.MOU, p.Affidavit,
		p.HealthState, p.HealthMedicalInfo, p.PrimaryPhy, p.PhysicianPhone, p.MedicationList,
		p.UserRoomate, p.RoomOccupancy,
		p.Contact1ULastName, p.Contact1UFirstName, p.Contact1URelationship,
		p.Contact1UMailingAddress, p.Contact1UCity, p.Contact1UZip, p.Contact1UEmail,
		p.Contact1UPhone, p.Contact1UMobNumber, p.Contact1UState,
		p.PassportNumber, p.PassportExpire, p.PassportFile, p.PassportCountry,
		p.FormSubmittedDate, p.TravelCategoryLicense, p.PassengerSignature,
		p.TripName)
	return err
}

func (r *PassengerRepository) Get(ctx context.Context, id string) (*models.Passenger, error) {
	return scanPassenger(r.DB.QueryRow(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE id=$1`, id))
}

func (r *PassengerRepository) ListByTrip(ctx context.Context, tripID int) ([]*models.Passenger, error) {
	return r.list(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE trip_id=$1 ORDER BY created_at`, tripID)
}

func (r *PassengerRepository) ListByContact(ctx context.Context, contactID string) ([]*models.Passenger, error) {
	return r.list(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE contact_id=$1 ORDER BY created_at`, contactID)
}

// ListUnlinked returns passengers that carry a trip name from GHL but
// have not been matched to a local trip yet.
func (r *PassengerRepository) ListUnlinked(ctx context.Context) ([]*models.Passenger, error) {
	return r.list(ctx,
		`SELECT `+passengerColumns+` FROM passengers
		 WHERE trip_id IS NULL AND trip_name IS NOT NULL AND trip_name <> ''
		 ORDER BY created_at`)
}

func (r *PassengerRepository) list(ctx context.Context, query string, args ...any) ([]*models.Passenger, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []*models.Passenger
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PassengerRepository) SetTripID(ctx context.Context, id string, tripID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE passengers SET trip_id=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		tripID, id)
	return err
}

func (r *PassengerRepository) SetDocumentURL(ctx context.Context, id, column, url string) error {
	var query string
	switch column {
	case "reservation":
		query = `UPDATE passengers SET reservation=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`
	case "mou":
		query = `UPDATE passengers SET mou=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`
	case "affidavit":
		query = `UPDATE passengers SET affidavit=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`
	default:
		return ErrUnknownDocumentColumn
	}
	_, err := r.DB.Exec(ctx, query, url, id)
	return err
}

func (r *PassengerRepository) CountByTrip(ctx context.Context, tripID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM passengers WHERE trip_id=$1`, tripID).Scan(&count)
	return count, err
}

func (r *PassengerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	return err
}
