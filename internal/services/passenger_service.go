package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"
	"tripbuilder/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var ErrTripFull = errors.New("trip is at capacity")

type PassengerService struct {
	passengers *repositories.PassengerRepository
	contacts   *repositories.ContactRepository
	trips      *repositories.TripRepository
	twoWay     *TwoWaySyncService
}

func NewPassengerService(passengers *repositories.PassengerRepository, contacts *repositories.ContactRepository,
	trips *repositories.TripRepository, twoWay *TwoWaySyncService) *PassengerService {
	return &PassengerService{
		passengers: passengers,
		contacts:   contacts,
		trips:      trips,
		twoWay:     twoWay,
	}
}

// Enroll puts a contact on a trip: the contact is found or created,
// a Passenger opportunity is opened in GHL, and the local row is
// written under the new opportunity id.
func (s *PassengerService) Enroll(ctx context.Context, req models.EnrollPassengerRequest) (*models.Passenger, error) {
	if req.Email == "" {
		return nil, errors.New("email is required")
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, errors.New("firstname and lastname are required")
	}

	trip, err := s.trips.Get(ctx, req.TripID)
	if err != nil {
		return nil, fmt.Errorf("trip %d: %w", req.TripID, err)
	}
	if trip.MaxPassengers != nil {
		enrolled, err := s.passengers.CountByTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		if enrolled >= *trip.MaxPassengers {
			return nil, ErrTripFull
		}
	}

	contact, err := s.getOrCreateContact(ctx, req)
	if err != nil {
		return nil, err
	}

	tripName := ""
	if trip.Name != nil {
		tripName = *trip.Name
	}
	name := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if tripName != "" {
		name = name + " - " + tripName
	}

	customFields := map[string]string{
		"contact.firstname": req.FirstName,
		"contact.lastname":  req.LastName,
		"contact.email":     req.Email,
	}
	if req.Phone != "" {
		customFields["contact.phone"] = req.Phone
	}
	if tripName != "" {
		customFields["opportunity.tripname"] = tripName
	}

	opp, err := s.twoWay.CreatePassengerOpportunity(ctx, name, contact.ID, customFields)
	if err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}

	passenger := &models.Passenger{
		ID:        opp.ID,
		ContactID: contact.ID,
		TripID:    &trip.ID,
	}
	first, last, email := req.FirstName, req.LastName, req.Email
	passenger.FirstName = &first
	passenger.LastName = &last
	passenger.Email = &email
	if req.Phone != "" {
		phone := req.Phone
		passenger.Phone = &phone
	}
	if tripName != "" {
		passenger.TripName = &tripName
	}
	if opp.PipelineStageID != "" {
		stageID := opp.PipelineStageID
		passenger.StageID = &stageID
	}

	if err := s.passengers.Upsert(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// getOrCreateContact resolves the contact locally first, then by CRM
// search, then by creating it in the CRM.
func (s *PassengerService) getOrCreateContact(ctx context.Context, req models.EnrollPassengerRequest) (*models.Contact, error) {
	contact, err := s.contacts.GetByEmail(ctx, req.Email)
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	page, err := s.twoWay.client.SearchContacts(ctx, ghl.ContactSearch{Query: req.Email, Limit: 10})
	if err == nil {
		for _, c := range page.Contacts {
			if strings.EqualFold(c.Email, req.Email) {
				local := contactFromGHL(c)
				if err := s.contacts.Upsert(ctx, local); err != nil {
					return nil, err
				}
				return local, nil
			}
		}
	} else {
		log.Printf("[PassengerService] contact search: %v", err)
	}

	created, err := s.twoWay.client.CreateContact(ctx, ghl.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	local := contactFromGHL(created)
	if err := s.contacts.Upsert(ctx, local); err != nil {
		return nil, err
	}
	return local, nil
}

func (s *PassengerService) Get(ctx context.Context, id string) (*models.Passenger, error) {
	return s.passengers.Get(ctx, id)
}

func (s *PassengerService) ListByTrip(ctx context.Context, tripID int) ([]*models.Passenger, error) {
	return s.passengers.ListByTrip(ctx, tripID)
}

func (s *PassengerService) ListByContact(ctx context.Context, contactID string) ([]*models.Passenger, error) {
	return s.passengers.ListByContact(ctx, contactID)
}

// Update applies form fields to the passenger and pushes the changes
// to GHL. Push failures are logged, not returned; the record is saved
// either way.
func (s *PassengerService) Update(ctx context.Context, id string, req models.UpdatePassengerRequest) (*models.Passenger, error) {
	p, err := s.passengers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		p.Status = req.Status
	}
	if req.HealthState != nil {
		p.HealthState = req.HealthState
	}
	if req.HealthMedicalInfo != nil {
		p.HealthMedicalInfo = req.HealthMedicalInfo
	}
	if req.PrimaryPhy != nil {
		p.PrimaryPhy = req.PrimaryPhy
	}
	if req.PhysicianPhone != nil {
		p.PhysicianPhone = req.PhysicianPhone
	}
	if req.MedicationList != nil {
		p.MedicationList = req.MedicationList
	}
	if req.UserRoomate != nil {
		p.UserRoomate = req.UserRoomate
	}
	if req.RoomOccupancy != nil {
		p.RoomOccupancy = req.RoomOccupancy
	}
	if req.PassportNumber != nil {
		p.PassportNumber = req.PassportNumber
	}
	if req.PassportCountry != nil {
		p.PassportCountry = req.PassportCountry
	}
	if req.PassportExpire != nil {
		d, err := time.Parse("2006-01-02", *req.PassportExpire)
		if err != nil {
			return nil, errors.New("passport_expire must be YYYY-MM-DD")
		}
		p.PassportExpire = &d
	}
	if req.Contact1ULastName != nil {
		p.Contact1ULastName = req.Contact1ULastName
	}
	if req.Contact1UFirstName != nil {
		p.Contact1UFirstName = req.Contact1UFirstName
	}
	if req.Contact1URelationship != nil {
		p.Contact1URelationship = req.Contact1URelationship
	}
	if req.Contact1UPhone != nil {
		p.Contact1UPhone = req.Contact1UPhone
	}
	if req.Contact1UEmail != nil {
		p.Contact1UEmail = req.Contact1UEmail
	}
	if req.TravelCategoryLicense != nil {
		p.TravelCategoryLicense = req.TravelCategoryLicense
	}
	if req.PassengerSignature != nil {
		p.PassengerSignature = req.PassengerSignature
		now := time.Now().UTC()
		p.FormSubmittedDate = &now
	}

	if err := s.passengers.Upsert(ctx, p); err != nil {
		return nil, err
	}

	if status, err := s.twoWay.PushPassenger(ctx, p); err != nil {
		log.Printf("[PassengerService] push passenger %s (%s): %v", p.ID, status, err)
	}
	return p, nil
}

// Delete removes the passenger locally and makes a best-effort delete
// of its opportunity in GHL.
func (s *PassengerService) Delete(ctx context.Context, id string) error {
	if err := s.twoWay.client.DeleteOpportunity(ctx, id); err != nil {
		log.Printf("[PassengerService] delete opportunity %s: %v", id, err)
	}
	return s.passengers.Delete(ctx, id)
}

// MoveStage moves the passenger's opportunity to another pipeline
// stage and records the stage locally.
func (s *PassengerService) MoveStage(ctx context.Context, id, stageID string) (*models.Passenger, error) {
	p, err := s.passengers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.twoWay.client.UpdateOpportunityStage(ctx, id, stageID); err != nil {
		return nil, err
	}
	p.StageID = &stageID
	if err := s.passengers.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
