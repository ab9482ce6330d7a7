package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"
	"tripbuilder/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type ContactService struct {
	contacts *repositories.ContactRepository
	client   *ghl.Client
	twoWay   *TwoWaySyncService
}

func NewContactService(contacts *repositories.ContactRepository, client *ghl.Client, twoWay *TwoWaySyncService) *ContactService {
	return &ContactService{contacts: contacts, client: client, twoWay: twoWay}
}

// Create makes the contact in GHL first, then caches it locally under
// the id the CRM assigned.
func (s *ContactService) Create(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	if req.Email == "" {
		return nil, errors.New("email is required")
	}
	if existing, err := s.contacts.GetByEmail(ctx, req.Email); err == nil {
		return existing, fmt.Errorf("contact %s already exists", existing.ID)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	created, err := s.client.CreateContact(ctx, ghl.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, err
	}
	local := contactFromGHL(created)
	if err := s.contacts.Upsert(ctx, local); err != nil {
		return nil, err
	}
	return local, nil
}

// Get returns the local row, refreshing it from GHL when the contact
// is not cached yet.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.contacts.Get(ctx, id)
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	remote, err := s.client.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}
	local := contactFromGHL(remote)
	local.ID = id
	if err := s.contacts.Upsert(ctx, local); err != nil {
		return nil, err
	}
	return local, nil
}

func (s *ContactService) List(ctx context.Context, limit, offset int) ([]*models.Contact, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.contacts.List(ctx, limit, offset)
}

// Update writes the contact locally and pushes the core fields to GHL.
func (s *ContactService) Update(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	if err := s.contacts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	if status, err := s.twoWay.PushContact(ctx, c); err != nil {
		log.Printf("[ContactService] push contact %s (%s): %v", c.ID, status, err)
	}
	return c, nil
}

// Delete removes the contact in GHL and locally. The remote delete
// must succeed first so the CRM stays authoritative.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteContact(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}
