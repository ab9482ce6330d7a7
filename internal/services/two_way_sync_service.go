package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"tripbuilder/internal/fieldmap"
	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PushStatus tags the outcome of a push attempt.
type PushStatus string

const (
	PushSynced  PushStatus = "synced"
	PushSkipped PushStatus = "skipped"
	PushFailed  PushStatus = "failed"
)

var ErrPipelineHasNoStages = errors.New("pipeline has no stages")

// TwoWaySyncService moves individual records between the local
// database and GoHighLevel, in both directions. Full-catalog pulls
// build on its per-record ingest methods.
type TwoWaySyncService struct {
	client *ghl.Client
	codec  *fieldmap.Codec

	trips      TripStore
	passengers PassengerStore
	contacts   ContactStore

	tripPipelineID      string
	passengerPipelineID string
}

func NewTwoWaySyncService(client *ghl.Client, codec *fieldmap.Codec,
	trips TripStore, passengers PassengerStore, contacts ContactStore,
	tripPipelineID, passengerPipelineID string) *TwoWaySyncService {
	return &TwoWaySyncService{
		client:              client,
		codec:               codec,
		trips:               trips,
		passengers:          passengers,
		contacts:            contacts,
		tripPipelineID:      tripPipelineID,
		passengerPipelineID: passengerPipelineID,
	}
}

// ---------------------------------------------------------------------
// Pull: GHL -> local
// ---------------------------------------------------------------------

// IngestTripOpportunity writes one TripBooking opportunity into the
// trips table, creating the row on first sight. Fields that fail to
// decode are skipped, so values from earlier syncs survive.
func (s *TwoWaySyncService) IngestTripOpportunity(ctx context.Context, opp *ghl.Opportunity) (*models.Trip, error) {
	trip, err := s.trips.GetByOpportunityID(ctx, opp.ID)
	created := false
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		oppID := opp.ID
		trip = &models.Trip{
			PublicID:         uuid.NewString(),
			Currency:         "USD",
			Status:           "draft",
			GHLOpportunityID: &oppID,
		}
		created = true
	}

	if opp.Name != "" {
		name := opp.Name
		trip.Name = &name
	}
	if opp.ContactID != "" {
		contactID := opp.ContactID
		trip.ContactID = &contactID
	}
	if opp.Status != "" {
		trip.Status = opp.Status
	}

	vals := s.codec.Decode(fieldmap.TableTrips, opp.CustomFields)
	fieldmap.ApplyTripValues(trip, vals)

	if created {
		if err := s.trips.Create(ctx, trip); err != nil {
			return nil, err
		}
	} else if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// IngestPassengerOpportunity writes one Passenger opportunity into the
// passengers table. The linked contact is cached locally first so the
// foreign key holds.
func (s *TwoWaySyncService) IngestPassengerOpportunity(ctx context.Context, opp *ghl.Opportunity) (*models.Passenger, error) {
	if opp.ContactID == "" {
		return nil, fmt.Errorf("opportunity %s has no contact", opp.ID)
	}
	if err := s.ensureContact(ctx, opp.ContactID, opp.Contact); err != nil {
		return nil, fmt.Errorf("contact %s: %w", opp.ContactID, err)
	}

	passenger, err := s.passengers.Get(ctx, opp.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		passenger = &models.Passenger{ID: opp.ID}
	}
	passenger.ContactID = opp.ContactID
	if opp.PipelineStageID != "" {
		stageID := opp.PipelineStageID
		passenger.StageID = &stageID
	}

	vals := s.codec.Decode(fieldmap.TablePassengers, opp.CustomFields)
	fieldmap.ApplyPassengerValues(passenger, vals)

	if err := s.passengers.Upsert(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// PullTrip refreshes one trip from its GHL opportunity.
func (s *TwoWaySyncService) PullTrip(ctx context.Context, opportunityID string) (*models.Trip, error) {
	opp, err := s.client.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	return s.IngestTripOpportunity(ctx, opp)
}

// PullPassenger refreshes one passenger from its GHL opportunity.
func (s *TwoWaySyncService) PullPassenger(ctx context.Context, opportunityID string) (*models.Passenger, error) {
	opp, err := s.client.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	return s.IngestPassengerOpportunity(ctx, opp)
}

// ensureContact makes sure the contact row exists locally, fetching it
// from GHL when the opportunity did not embed it.
func (s *TwoWaySyncService) ensureContact(ctx context.Context, contactID string, embedded *ghl.Contact) error {
	if _, err := s.contacts.Get(ctx, contactID); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	remote := embedded
	if remote == nil {
		var err error
		remote, err = s.client.GetContact(ctx, contactID)
		if err != nil {
			return err
		}
	}
	c := contactFromGHL(remote)
	c.ID = contactID
	return s.contacts.Upsert(ctx, c)
}

func contactFromGHL(in *ghl.Contact) *models.Contact {
	c := &models.Contact{ID: in.ID, Tags: in.Tags}
	setIf(&c.FirstName, in.FirstName)
	setIf(&c.LastName, in.LastName)
	setIf(&c.Email, in.Email)
	setIf(&c.Phone, in.Phone)
	setIf(&c.Address, in.Address1)
	setIf(&c.City, in.City)
	setIf(&c.State, in.State)
	setIf(&c.PostalCode, in.PostalCode)
	setIf(&c.Country, in.Country)
	setIf(&c.CompanyName, in.CompanyName)
	setIf(&c.Website, in.Website)
	setIf(&c.Source, in.Source)
	return c
}

func setIf(dst **string, v string) {
	if v != "" {
		*dst = &v
	}
}

// ---------------------------------------------------------------------
// Push: local -> GHL
// ---------------------------------------------------------------------

// PushTrip sends a trip's mapped fields to its GHL opportunity,
// creating the opportunity on first push. Trips without a contact
// cannot be created in GHL and come back skipped.
func (s *TwoWaySyncService) PushTrip(ctx context.Context, trip *models.Trip) (PushStatus, error) {
	customFields := s.codec.Encode(fieldmap.TableTrips, fieldmap.TripFieldValues(trip))
	name := ""
	if trip.Name != nil {
		name = *trip.Name
	}

	if trip.GHLOpportunityID != nil {
		return s.pushUpdate(ctx, *trip.GHLOpportunityID, name, customFields)
	}

	if trip.ContactID == nil || name == "" {
		return PushSkipped, nil
	}
	stageID, err := s.initialStageID(ctx, s.tripPipelineID)
	if err != nil {
		return PushFailed, err
	}
	opp, err := s.client.CreateOpportunity(ctx, ghl.OpportunityInput{
		Name:         name,
		PipelineID:   s.tripPipelineID,
		StageID:      stageID,
		ContactID:    *trip.ContactID,
		Status:       "open",
		CustomFields: customFields,
	})
	if err != nil {
		return PushFailed, err
	}
	if err := s.trips.SetOpportunityID(ctx, trip.ID, opp.ID); err != nil {
		return PushFailed, err
	}
	trip.GHLOpportunityID = &opp.ID
	return PushSynced, nil
}

// PushPassenger sends a passenger's mapped fields to its opportunity.
// The passenger record only exists once the opportunity does, so this
// is always an update.
func (s *TwoWaySyncService) PushPassenger(ctx context.Context, p *models.Passenger) (PushStatus, error) {
	customFields := s.codec.Encode(fieldmap.TablePassengers, fieldmap.PassengerFieldValues(p))
	name := passengerOpportunityName(p)
	return s.pushUpdate(ctx, p.ID, name, customFields)
}

// pushUpdate updates the opportunity's core fields, then upserts the
// custom fields one by one. A single failing field does not abort the
// rest.
func (s *TwoWaySyncService) pushUpdate(ctx context.Context, opportunityID, name string, customFields map[string]string) (PushStatus, error) {
	in := ghl.OpportunityInput{Name: name}
	if _, err := s.client.UpdateOpportunity(ctx, opportunityID, in); err != nil {
		return PushFailed, err
	}

	keys := make([]string, 0, len(customFields))
	for k := range customFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lastErr error
	for _, key := range keys {
		if err := s.client.UpsertOpportunityCustomField(ctx, opportunityID, key, customFields[key]); err != nil {
			log.Printf("[TwoWaySync] field %s on %s: %v", key, opportunityID, err)
			lastErr = err
		}
	}
	if lastErr != nil && len(customFields) > 0 {
		return PushSynced, lastErr
	}
	return PushSynced, nil
}

// PushContact updates the contact's core fields in GHL.
func (s *TwoWaySyncService) PushContact(ctx context.Context, c *models.Contact) (PushStatus, error) {
	in := ghl.ContactInput{}
	if c.FirstName != nil {
		in.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		in.LastName = *c.LastName
	}
	if c.Email != nil {
		in.Email = *c.Email
	}
	if c.Phone != nil {
		in.Phone = *c.Phone
	}
	if c.Address != nil {
		in.Address1 = *c.Address
	}
	if c.City != nil {
		in.City = *c.City
	}
	if c.State != nil {
		in.State = *c.State
	}
	if c.PostalCode != nil {
		in.PostalCode = *c.PostalCode
	}
	if c.Country != nil {
		in.Country = *c.Country
	}
	if _, err := s.client.UpdateContact(ctx, c.ID, in); err != nil {
		return PushFailed, err
	}
	return PushSynced, nil
}

// CreatePassengerOpportunity opens a new Passenger opportunity at the
// pipeline's first stage. Enrollment uses this before the local row
// can exist.
func (s *TwoWaySyncService) CreatePassengerOpportunity(ctx context.Context, name, contactID string, customFields map[string]string) (*ghl.Opportunity, error) {
	stageID, err := s.initialStageID(ctx, s.passengerPipelineID)
	if err != nil {
		return nil, err
	}
	return s.client.CreateOpportunity(ctx, ghl.OpportunityInput{
		Name:         name,
		PipelineID:   s.passengerPipelineID,
		StageID:      stageID,
		ContactID:    contactID,
		Status:       "open",
		CustomFields: customFields,
	})
}

func (s *TwoWaySyncService) initialStageID(ctx context.Context, pipelineID string) (string, error) {
	pipelines, err := s.client.GetPipelines(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range pipelines {
		if p.ID == pipelineID {
			if len(p.Stages) == 0 {
				return "", fmt.Errorf("pipeline %s: %w", pipelineID, ErrPipelineHasNoStages)
			}
			return p.Stages[0].ID, nil
		}
	}
	return "", fmt.Errorf("pipeline %s not found", pipelineID)
}

func passengerOpportunityName(p *models.Passenger) string {
	first, last := "", ""
	if p.FirstName != nil {
		first = *p.FirstName
	}
	if p.LastName != nil {
		last = *p.LastName
	}
	name := first
	if last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	if p.TripName != nil && *p.TripName != "" {
		if name == "" {
			return *p.TripName
		}
		return name + " - " + *p.TripName
	}
	return name
}
