package services

import (
	"context"

	"tripbuilder/internal/models"
)

// Narrow store interfaces over the repositories. The sync services
// take these instead of concrete repositories so tests can swap in
// in-memory fakes.

type TripStore interface {
	Create(ctx context.Context, t *models.Trip) error
	Get(ctx context.Context, id int) (*models.Trip, error)
	GetByOpportunityID(ctx context.Context, opportunityID string) (*models.Trip, error)
	List(ctx context.Context) ([]*models.Trip, error)
	Update(ctx context.Context, t *models.Trip) error
	SetOpportunityID(ctx context.Context, id int, opportunityID string) error
}

type ContactStore interface {
	Upsert(ctx context.Context, c *models.Contact) error
	Get(ctx context.Context, id string) (*models.Contact, error)
	GetByEmail(ctx context.Context, email string) (*models.Contact, error)
}

type PassengerStore interface {
	Upsert(ctx context.Context, p *models.Passenger) error
	Get(ctx context.Context, id string) (*models.Passenger, error)
	ListUnlinked(ctx context.Context) ([]*models.Passenger, error)
	SetTripID(ctx context.Context, id string, tripID int) error
}

type PipelineStore interface {
	Upsert(ctx context.Context, p *models.Pipeline) error
}

type CustomFieldStore interface {
	Upsert(ctx context.Context, f *models.CustomField) error
	SaveDropdownOptions(ctx context.Context, fieldKey string, options []string) error
	GetDropdownOptions(ctx context.Context, fieldKey string) (*models.DropdownCache, error)
}

type FieldMapStore interface {
	ReplaceAll(ctx context.Context, mappings []models.FieldMapping) error
	ListAll(ctx context.Context) ([]models.FieldMapping, error)
}

type SyncLogStore interface {
	Start(ctx context.Context, syncType string) (int, error)
	Finish(ctx context.Context, id int, status string, recordsSynced int, errs []string) error
}

type VendorStore interface {
	UpsertByName(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (*models.TripVendor, error)
	List(ctx context.Context) ([]*models.TripVendor, error)
	Delete(ctx context.Context, id int) error
}
