package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbuilder/internal/fieldmap"
	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"
	"tripbuilder/internal/services"
)

// Webhook payloads that cannot be processed are still acknowledged
// with 200 so GHL does not retry them forever.
func TestWebhookAcksUnusablePayloads(t *testing.T) {
	h := NewSyncHandler(nil, nil, nil, "pipe_trip", "pipe_pax")

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"type": "OpportunityUpdate",`},
		{"no opportunity id", `{"type": "OpportunityUpdate", "pipelineId": "pipe_trip"}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhooks/ghl", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Webhook(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

type webhookTripStore struct {
	trips map[string]*models.Trip
}

func (s *webhookTripStore) Create(ctx context.Context, tr *models.Trip) error {
	tr.ID = len(s.trips) + 1
	s.trips[*tr.GHLOpportunityID] = tr
	return nil
}

func (s *webhookTripStore) Get(ctx context.Context, id int) (*models.Trip, error) {
	return nil, pgx.ErrNoRows
}

func (s *webhookTripStore) GetByOpportunityID(ctx context.Context, opportunityID string) (*models.Trip, error) {
	if tr, ok := s.trips[opportunityID]; ok {
		return tr, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *webhookTripStore) List(ctx context.Context) ([]*models.Trip, error) { return nil, nil }
func (s *webhookTripStore) Update(ctx context.Context, tr *models.Trip) error {
	return nil
}
func (s *webhookTripStore) SetOpportunityID(ctx context.Context, id int, opportunityID string) error {
	return nil
}

type webhookPassengerStore struct{}

func (webhookPassengerStore) Upsert(ctx context.Context, p *models.Passenger) error { return nil }
func (webhookPassengerStore) Get(ctx context.Context, id string) (*models.Passenger, error) {
	return nil, pgx.ErrNoRows
}
func (webhookPassengerStore) ListUnlinked(ctx context.Context) ([]*models.Passenger, error) {
	return nil, nil
}
func (webhookPassengerStore) SetTripID(ctx context.Context, id string, tripID int) error { return nil }

type webhookContactStore struct{}

func (webhookContactStore) Upsert(ctx context.Context, c *models.Contact) error { return nil }
func (webhookContactStore) Get(ctx context.Context, id string) (*models.Contact, error) {
	return nil, pgx.ErrNoRows
}
func (webhookContactStore) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	return nil, pgx.ErrNoRows
}

// The pull happens before the ack goes out, so the event's record is
// already local when GHL sees the 200.
func TestWebhookPullsTripBeforeAck(t *testing.T) {
	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/opportunities/opp_w1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"opportunity": {"id": "opp_w1", "name": "Havana Spring", "status": "open", "pipelineId": "pipe_trip"}}`)
	}))
	defer crm.Close()

	client := ghl.NewClient("loc_test", "token", ghl.WithBaseURL(crm.URL), ghl.WithMinInterval(0))
	trips := &webhookTripStore{trips: map[string]*models.Trip{}}
	twoWay := services.NewTwoWaySyncService(client, fieldmap.NewCodec(fieldmap.NewRegistry()),
		trips, webhookPassengerStore{}, webhookContactStore{}, "pipe_trip", "pipe_pax")
	h := NewSyncHandler(nil, twoWay, nil, "pipe_trip", "pipe_pax")

	body := `{"type": "OpportunityUpdate", "opportunityId": "opp_w1", "pipelineId": "pipe_trip"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ghl", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	tr, err := trips.GetByOpportunityID(context.Background(), "opp_w1")
	require.NoError(t, err)
	require.NotNil(t, tr.Name)
	assert.Equal(t, "Havana Spring", *tr.Name)
}
