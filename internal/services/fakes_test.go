package services

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"tripbuilder/internal/models"
)

// In-memory fakes over the store interfaces.

type fakeTripStore struct {
	trips  map[int]*models.Trip
	nextID int
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{trips: map[int]*models.Trip{}, nextID: 1}
}

func (s *fakeTripStore) Create(ctx context.Context, t *models.Trip) error {
	t.ID = s.nextID
	s.nextID++
	s.trips[t.ID] = t
	return nil
}

func (s *fakeTripStore) Get(ctx context.Context, id int) (*models.Trip, error) {
	t, ok := s.trips[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (s *fakeTripStore) GetByOpportunityID(ctx context.Context, opportunityID string) (*models.Trip, error) {
	for _, t := range s.trips {
		if t.GHLOpportunityID != nil && *t.GHLOpportunityID == opportunityID {
			return t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeTripStore) List(ctx context.Context) ([]*models.Trip, error) {
	ids := make([]int, 0, len(s.trips))
	for id := range s.trips {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.trips[id])
	}
	return out, nil
}

func (s *fakeTripStore) Update(ctx context.Context, t *models.Trip) error {
	if _, ok := s.trips[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.trips[t.ID] = t
	return nil
}

func (s *fakeTripStore) SetOpportunityID(ctx context.Context, id int, opportunityID string) error {
	t, ok := s.trips[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.GHLOpportunityID = &opportunityID
	return nil
}

type fakePassengerStore struct {
	passengers map[string]*models.Passenger
	upserts    int
}

func newFakePassengerStore() *fakePassengerStore {
	return &fakePassengerStore{passengers: map[string]*models.Passenger{}}
}

func (s *fakePassengerStore) Upsert(ctx context.Context, p *models.Passenger) error {
	s.passengers[p.ID] = p
	s.upserts++
	return nil
}

func (s *fakePassengerStore) Get(ctx context.Context, id string) (*models.Passenger, error) {
	p, ok := s.passengers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakePassengerStore) ListUnlinked(ctx context.Context) ([]*models.Passenger, error) {
	ids := make([]string, 0, len(s.passengers))
	for id, p := range s.passengers {
		if p.TripID == nil && p.TripName != nil && *p.TripName != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]*models.Passenger, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.passengers[id])
	}
	return out, nil
}

func (s *fakePassengerStore) SetTripID(ctx context.Context, id string, tripID int) error {
	p, ok := s.passengers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.TripID = &tripID
	return nil
}

type fakeContactStore struct {
	contacts map[string]*models.Contact
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: map[string]*models.Contact{}}
}

func (s *fakeContactStore) Upsert(ctx context.Context, c *models.Contact) error {
	s.contacts[c.ID] = c
	return nil
}

func (s *fakeContactStore) Get(ctx context.Context, id string) (*models.Contact, error) {
	c, ok := s.contacts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeContactStore) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	for _, c := range s.contacts {
		if c.Email != nil && strings.EqualFold(*c.Email, email) {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakePipelineStore struct {
	pipelines map[string]*models.Pipeline
}

func newFakePipelineStore() *fakePipelineStore {
	return &fakePipelineStore{pipelines: map[string]*models.Pipeline{}}
}

func (s *fakePipelineStore) Upsert(ctx context.Context, p *models.Pipeline) error {
	s.pipelines[p.ID] = p
	return nil
}

type fakeCustomFieldStore struct {
	fields  map[string]*models.CustomField
	options map[string][]string
}

func newFakeCustomFieldStore() *fakeCustomFieldStore {
	return &fakeCustomFieldStore{
		fields:  map[string]*models.CustomField{},
		options: map[string][]string{},
	}
}

func (s *fakeCustomFieldStore) Upsert(ctx context.Context, f *models.CustomField) error {
	s.fields[f.FieldKey] = f
	return nil
}

func (s *fakeCustomFieldStore) SaveDropdownOptions(ctx context.Context, fieldKey string, options []string) error {
	s.options[fieldKey] = options
	return nil
}

func (s *fakeCustomFieldStore) GetDropdownOptions(ctx context.Context, fieldKey string) (*models.DropdownCache, error) {
	opts, ok := s.options[fieldKey]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &models.DropdownCache{FieldKey: fieldKey, Options: opts}, nil
}

type fakeFieldMapStore struct {
	rows []models.FieldMapping
}

func (s *fakeFieldMapStore) ReplaceAll(ctx context.Context, mappings []models.FieldMapping) error {
	s.rows = mappings
	return nil
}

func (s *fakeFieldMapStore) ListAll(ctx context.Context) ([]models.FieldMapping, error) {
	return s.rows, nil
}

type syncLogEntry struct {
	syncType string
	status   string
	records  int
	errs     []string
}

type fakeSyncLogStore struct {
	nextID int
	logs   map[int]*syncLogEntry
}

func newFakeSyncLogStore() *fakeSyncLogStore {
	return &fakeSyncLogStore{nextID: 1, logs: map[int]*syncLogEntry{}}
}

func (s *fakeSyncLogStore) Start(ctx context.Context, syncType string) (int, error) {
	id := s.nextID
	s.nextID++
	s.logs[id] = &syncLogEntry{syncType: syncType, status: models.SyncStatusInProgress}
	return id, nil
}

func (s *fakeSyncLogStore) Finish(ctx context.Context, id int, status string, recordsSynced int, errs []string) error {
	entry, ok := s.logs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	entry.status = status
	entry.records = recordsSynced
	entry.errs = errs
	return nil
}

type fakeVendorStore struct {
	vendors map[string]*models.TripVendor
	nextID  int
}

func newFakeVendorStore() *fakeVendorStore {
	return &fakeVendorStore{vendors: map[string]*models.TripVendor{}, nextID: 1}
}

func (s *fakeVendorStore) UpsertByName(ctx context.Context, name string) error {
	key := strings.ToLower(name)
	if _, ok := s.vendors[key]; ok {
		return nil
	}
	s.vendors[key] = &models.TripVendor{ID: s.nextID, Name: name}
	s.nextID++
	return nil
}

func (s *fakeVendorStore) GetByName(ctx context.Context, name string) (*models.TripVendor, error) {
	v, ok := s.vendors[strings.ToLower(name)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return v, nil
}

func (s *fakeVendorStore) List(ctx context.Context) ([]*models.TripVendor, error) {
	names := make([]string, 0, len(s.vendors))
	for key := range s.vendors {
		names = append(names, key)
	}
	sort.Strings(names)
	out := make([]*models.TripVendor, 0, len(names))
	for _, key := range names {
		out = append(out, s.vendors[key])
	}
	return out, nil
}

func (s *fakeVendorStore) Delete(ctx context.Context, id int) error {
	for key, v := range s.vendors {
		if v.ID == id {
			delete(s.vendors, key)
			return nil
		}
	}
	return pgx.ErrNoRows
}
