package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbuilder/internal/fieldmap"
	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"
)

const (
	testTripPipeline      = "pipe_trip"
	testPassengerPipeline = "pipe_pax"
)

func testCodec(t *testing.T) *fieldmap.Codec {
	t.Helper()
	reg := fieldmap.NewRegistry()
	reg.Rebuild([]*ghl.CustomFieldDefinition{
		{ID: "fld_name", FieldKey: "opportunity.tripname"},
		{ID: "fld_dest", FieldKey: "opportunity.destination"},
		{ID: "fld_max", FieldKey: "opportunity.maxpassengers"},
		{ID: "fld_email", FieldKey: "contact.email"},
		{ID: "fld_passport", FieldKey: "opportunity.passportnumber"},
	})
	return fieldmap.NewCodec(reg)
}

func ghlClient(t *testing.T, handler http.Handler) *ghl.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return ghl.NewClient("loc_test", "token",
		ghl.WithBaseURL(srv.URL), ghl.WithMinInterval(0))
}

func TestIngestTripOpportunityCreates(t *testing.T) {
	trips := newFakeTripStore()
	svc := NewTwoWaySyncService(nil, testCodec(t), trips,
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	dest := "Havana"
	trip, err := svc.IngestTripOpportunity(context.Background(), &ghl.Opportunity{
		ID:        "opp_1",
		Name:      "Havana Spring",
		ContactID: "contact_1",
		Status:    "open",
		CustomFields: []ghl.CustomFieldValue{
			{ID: "fld_dest", FieldValueString: &dest},
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, trip.ID)
	assert.NotEmpty(t, trip.PublicID)
	assert.Equal(t, "USD", trip.Currency)
	assert.Equal(t, "open", trip.Status)
	require.NotNil(t, trip.Name)
	assert.Equal(t, "Havana Spring", *trip.Name)
	require.NotNil(t, trip.Destination)
	assert.Equal(t, "Havana", *trip.Destination)
	require.NotNil(t, trip.GHLOpportunityID)
	assert.Equal(t, "opp_1", *trip.GHLOpportunityID)
}

func TestIngestTripOpportunityPreservesSkippedFields(t *testing.T) {
	trips := newFakeTripStore()
	svc := NewTwoWaySyncService(nil, testCodec(t), trips,
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	oppID := "opp_1"
	dest := "Havana"
	max := 20
	require.NoError(t, trips.Create(context.Background(), &models.Trip{
		GHLOpportunityID: &oppID,
		Destination:      &dest,
		MaxPassengers:    &max,
		Currency:         "USD",
		Status:           "draft",
	}))

	// The update carries an unparseable max_passengers; the stored
	// value must survive.
	bad := "twenty"
	newDest := "Trinidad"
	trip, err := svc.IngestTripOpportunity(context.Background(), &ghl.Opportunity{
		ID: "opp_1",
		CustomFields: []ghl.CustomFieldValue{
			{ID: "fld_max", FieldValueString: &bad},
			{ID: "fld_dest", FieldValueString: &newDest},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, trip.MaxPassengers)
	assert.Equal(t, 20, *trip.MaxPassengers)
	require.NotNil(t, trip.Destination)
	assert.Equal(t, "Trinidad", *trip.Destination)
}

func TestIngestPassengerOpportunityCachesContact(t *testing.T) {
	contacts := newFakeContactStore()
	passengers := newFakePassengerStore()

	client := ghlClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contacts/contact_1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"contact": map[string]any{
				"id": "contact_1", "firstName": "Ana", "email": "ana@example.com",
			},
		})
	}))
	svc := NewTwoWaySyncService(client, testCodec(t), newFakeTripStore(),
		passengers, contacts, testTripPipeline, testPassengerPipeline)

	passport := "X1234567"
	p, err := svc.IngestPassengerOpportunity(context.Background(), &ghl.Opportunity{
		ID:              "opp_pax_1",
		ContactID:       "contact_1",
		PipelineStageID: "stage_2",
		CustomFields: []ghl.CustomFieldValue{
			{ID: "fld_passport", FieldValueString: &passport},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "contact_1", p.ContactID)
	require.NotNil(t, p.StageID)
	assert.Equal(t, "stage_2", *p.StageID)
	require.NotNil(t, p.PassportNumber)
	assert.Equal(t, "X1234567", *p.PassportNumber)

	cached, err := contacts.Get(context.Background(), "contact_1")
	require.NoError(t, err)
	require.NotNil(t, cached.FirstName)
	assert.Equal(t, "Ana", *cached.FirstName)
}

func TestIngestPassengerOpportunityUsesEmbeddedContact(t *testing.T) {
	contacts := newFakeContactStore()

	// No HTTP client: the embedded contact must be enough.
	svc := NewTwoWaySyncService(nil, testCodec(t), newFakeTripStore(),
		newFakePassengerStore(), contacts, testTripPipeline, testPassengerPipeline)

	_, err := svc.IngestPassengerOpportunity(context.Background(), &ghl.Opportunity{
		ID:        "opp_pax_1",
		ContactID: "contact_1",
		Contact:   &ghl.Contact{ID: "contact_1", FirstName: "Ana"},
	})
	require.NoError(t, err)

	_, err = contacts.Get(context.Background(), "contact_1")
	assert.NoError(t, err)
}

func TestIngestPassengerOpportunityRequiresContact(t *testing.T) {
	svc := NewTwoWaySyncService(nil, testCodec(t), newFakeTripStore(),
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	_, err := svc.IngestPassengerOpportunity(context.Background(), &ghl.Opportunity{ID: "opp_1"})
	assert.Error(t, err)
}

func TestPushTripCreatesOpportunity(t *testing.T) {
	var created ghl.OpportunityInput

	r := mux.NewRouter()
	r.HandleFunc("/opportunities/pipelines", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"pipelines": []map[string]any{
				{"id": testTripPipeline, "name": "Trip Booking", "stages": []map[string]any{
					{"id": "stage_first", "name": "New"},
					{"id": "stage_second", "name": "Confirmed"},
				}},
			},
		})
	}).Methods("GET")
	r.HandleFunc("/opportunities/", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&created))
		json.NewEncoder(w).Encode(map[string]any{
			"opportunity": map[string]any{"id": "opp_new"},
		})
	}).Methods("POST")

	trips := newFakeTripStore()
	svc := NewTwoWaySyncService(ghlClient(t, r), testCodec(t), trips,
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	name := "Havana Spring"
	contactID := "contact_1"
	dest := "Havana"
	trip := &models.Trip{Name: &name, ContactID: &contactID, Destination: &dest}
	require.NoError(t, trips.Create(context.Background(), trip))

	status, err := svc.PushTrip(context.Background(), trip)
	require.NoError(t, err)
	assert.Equal(t, PushSynced, status)

	assert.Equal(t, testTripPipeline, created.PipelineID)
	assert.Equal(t, "stage_first", created.StageID)
	assert.Equal(t, "contact_1", created.ContactID)
	assert.Equal(t, "Havana", created.CustomFields["opportunity.destination"])

	require.NotNil(t, trip.GHLOpportunityID)
	assert.Equal(t, "opp_new", *trip.GHLOpportunityID)
	stored, _ := trips.Get(context.Background(), trip.ID)
	require.NotNil(t, stored.GHLOpportunityID)
	assert.Equal(t, "opp_new", *stored.GHLOpportunityID)
}

func TestPushTripSkipsWithoutContact(t *testing.T) {
	svc := NewTwoWaySyncService(nil, testCodec(t), newFakeTripStore(),
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	name := "Orphan Trip"
	status, err := svc.PushTrip(context.Background(), &models.Trip{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, PushSkipped, status)
}

func TestPushTripFailsOnEmptyPipeline(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/opportunities/pipelines", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"pipelines": []map[string]any{
				{"id": testTripPipeline, "name": "Trip Booking", "stages": []map[string]any{}},
			},
		})
	}).Methods("GET")

	svc := NewTwoWaySyncService(ghlClient(t, r), testCodec(t), newFakeTripStore(),
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	name := "Havana Spring"
	contactID := "contact_1"
	status, err := svc.PushTrip(context.Background(), &models.Trip{Name: &name, ContactID: &contactID})
	assert.Equal(t, PushFailed, status)
	assert.ErrorIs(t, err, ErrPipelineHasNoStages)
}

func TestPushTripUpdateToleratesFieldFailures(t *testing.T) {
	var fieldCalls []string

	r := mux.NewRouter()
	r.HandleFunc("/opportunities/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("PUT")
	r.HandleFunc("/opportunities/{id}/upsert", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]map[string]string
		json.NewDecoder(req.Body).Decode(&body)
		for key := range body["customFields"] {
			fieldCalls = append(fieldCalls, key)
			if key == "opportunity.destination" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("PUT")

	svc := NewTwoWaySyncService(ghlClient(t, r), testCodec(t), newFakeTripStore(),
		newFakePassengerStore(), newFakeContactStore(),
		testTripPipeline, testPassengerPipeline)

	oppID := "opp_1"
	name := "Havana Spring"
	dest := "Havana"
	max := 24
	trip := &models.Trip{GHLOpportunityID: &oppID, Name: &name, Destination: &dest, MaxPassengers: &max}

	status, err := svc.PushTrip(context.Background(), trip)
	assert.Equal(t, PushSynced, status)
	assert.Error(t, err, "the failing field surfaces without aborting the push")

	// Keys pushed in sorted order, all attempted despite the failure.
	assert.Equal(t, []string{
		"opportunity.destination",
		"opportunity.maxpassengers",
		"opportunity.tripname",
	}, fieldCalls)
}

func TestPassengerOpportunityName(t *testing.T) {
	first := "Ana"
	last := "Diaz"
	tripName := "Havana Spring"

	assert.Equal(t, "Ana Diaz - Havana Spring", passengerOpportunityName(&models.Passenger{
		FirstName: &first, LastName: &last, TripName: &tripName,
	}))
	assert.Equal(t, "Ana Diaz", passengerOpportunityName(&models.Passenger{
		FirstName: &first, LastName: &last,
	}))
	assert.Equal(t, "Havana Spring", passengerOpportunityName(&models.Passenger{
		TripName: &tripName,
	}))
}
