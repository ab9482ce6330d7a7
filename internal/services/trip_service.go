package services

import (
	"context"
	"errors"
	"log"
	"time"

	"tripbuilder/internal/models"
	"tripbuilder/internal/repositories"

	"github.com/google/uuid"
)

type TripService struct {
	trips      *repositories.TripRepository
	passengers *repositories.PassengerRepository
	twoWay     *TwoWaySyncService
}

func NewTripService(trips *repositories.TripRepository, passengers *repositories.PassengerRepository, twoWay *TwoWaySyncService) *TripService {
	return &TripService{trips: trips, passengers: passengers, twoWay: twoWay}
}

func (s *TripService) Create(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	if req.Name == "" {
		return nil, errors.New("trip name is required")
	}

	trip := &models.Trip{
		PublicID: uuid.NewString(),
		Currency: "USD",
		Status:   "draft",
		IsPublic: req.IsPublic,
	}
	name := req.Name
	trip.Name = &name
	if req.Destination != "" {
		d := req.Destination
		trip.Destination = &d
	}
	if req.Description != "" {
		desc := req.Description
		trip.Description = &desc
	}
	if req.TravelCategory != "" {
		tc := req.TravelCategory
		trip.TravelCategory = &tc
	}
	if req.MaxPassengers > 0 {
		mp := req.MaxPassengers
		trip.MaxPassengers = &mp
	}
	trip.BasePrice = req.BasePrice
	trip.TripVendorID = req.TripVendorID

	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, errors.New("start_date must be YYYY-MM-DD")
		}
		trip.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, errors.New("end_date must be YYYY-MM-DD")
		}
		trip.EndDate = &d
	}
	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		return nil, errors.New("end_date is before start_date")
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	s.pushTrip(ctx, trip)
	return trip, nil
}

func (s *TripService) Get(ctx context.Context, id int) (*models.Trip, error) {
	return s.trips.Get(ctx, id)
}

func (s *TripService) GetByPublicID(ctx context.Context, publicID string) (*models.Trip, error) {
	return s.trips.GetByPublicID(ctx, publicID)
}

func (s *TripService) List(ctx context.Context) ([]*models.Trip, error) {
	return s.trips.List(ctx)
}

func (s *TripService) Update(ctx context.Context, id int, req models.UpdateTripRequest) (*models.Trip, error) {
	trip, err := s.trips.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trip.Name = req.Name
	}
	if req.Destination != nil {
		trip.Destination = req.Destination
	}
	if req.Description != nil {
		trip.Description = req.Description
	}
	if req.MaxPassengers != nil {
		trip.MaxPassengers = req.MaxPassengers
	}
	if req.BasePrice != nil {
		trip.BasePrice = req.BasePrice
	}
	if req.TripVendorID != nil {
		trip.TripVendorID = req.TripVendorID
	}
	if req.TravelCategory != nil {
		trip.TravelCategory = req.TravelCategory
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}
	if req.IsPublic != nil {
		trip.IsPublic = *req.IsPublic
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, errors.New("start_date must be YYYY-MM-DD")
		}
		trip.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, errors.New("end_date must be YYYY-MM-DD")
		}
		trip.EndDate = &d
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	s.pushTrip(ctx, trip)
	return trip, nil
}

// Delete removes the trip and its passengers locally, then makes a
// best-effort pass at deleting the matching opportunities in GHL.
func (s *TripService) Delete(ctx context.Context, id int) error {
	trip, err := s.trips.Get(ctx, id)
	if err != nil {
		return err
	}
	passengers, err := s.passengers.ListByTrip(ctx, id)
	if err != nil {
		return err
	}

	for _, p := range passengers {
		if err := s.twoWay.client.DeleteOpportunity(ctx, p.ID); err != nil {
			log.Printf("[TripService] delete passenger opportunity %s: %v", p.ID, err)
		}
	}
	if trip.GHLOpportunityID != nil {
		if err := s.twoWay.client.DeleteOpportunity(ctx, *trip.GHLOpportunityID); err != nil {
			log.Printf("[TripService] delete trip opportunity %s: %v", *trip.GHLOpportunityID, err)
		}
	}

	return s.trips.Delete(ctx, id)
}

// pushTrip pushes after a local write. Push failures do not fail the
// local operation; the next sync pass catches up.
func (s *TripService) pushTrip(ctx context.Context, trip *models.Trip) {
	status, err := s.twoWay.PushTrip(ctx, trip)
	if err != nil {
		log.Printf("[TripService] push trip %d (%s): %v", trip.ID, status, err)
	}
}
