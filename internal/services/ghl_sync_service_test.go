package services

import (
	"context"
	"encoding/json"
	"fmt"
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

type syncFixture struct {
	svc        *GHLSyncService
	trips      *fakeTripStore
	passengers *fakePassengerStore
	contacts   *fakeContactStore
	fields     *fakeCustomFieldStore
	fieldMaps  *fakeFieldMapStore
	logs       *fakeSyncLogStore
	vendors    *fakeVendorStore
}

func newSyncFixture(t *testing.T, handler http.Handler) *syncFixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := ghl.NewClient("loc_test", "token",
		ghl.WithBaseURL(srv.URL), ghl.WithMinInterval(0))

	f := &syncFixture{
		trips:      newFakeTripStore(),
		passengers: newFakePassengerStore(),
		contacts:   newFakeContactStore(),
		fields:     newFakeCustomFieldStore(),
		fieldMaps:  &fakeFieldMapStore{},
		logs:       newFakeSyncLogStore(),
		vendors:    newFakeVendorStore(),
	}
	registry := fieldmap.NewRegistry()
	twoWay := NewTwoWaySyncService(client, fieldmap.NewCodec(registry),
		f.trips, f.passengers, f.contacts, testTripPipeline, testPassengerPipeline)
	linker := NewTripLinkService(f.trips, f.passengers)
	vendorSync := NewVendorSyncService(client, f.vendors, f.fields)
	f.svc = NewGHLSyncService(client, registry, twoWay, linker, vendorSync,
		f.pipelines(), f.fields, f.fieldMaps, f.logs,
		testTripPipeline, testPassengerPipeline)
	return f
}

func (f *syncFixture) pipelines() *fakePipelineStore {
	return newFakePipelineStore()
}

// fullSyncServer fakes the handful of GHL endpoints a full sync walks.
// tripCount trips arrive across search pages of 100; one passenger
// opportunity carries the name of the first trip.
func fullSyncServer(t *testing.T, tripCount int, passengerContactID string) http.Handler {
	t.Helper()
	r := mux.NewRouter()

	r.HandleFunc("/opportunities/pipelines", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"pipelines": []map[string]any{
				{"id": testTripPipeline, "name": "Trip Booking", "stages": []map[string]any{
					{"id": "stage_t1", "name": "New"},
				}},
				{"id": testPassengerPipeline, "name": "Passenger", "stages": []map[string]any{
					{"id": "stage_p1", "name": "Enrolled"},
				}},
			},
		})
	}).Methods("GET")

	r.HandleFunc("/locations/loc_test/customFields", func(w http.ResponseWriter, req *http.Request) {
		var defs []map[string]any
		switch req.URL.Query().Get("model") {
		case "opportunity":
			defs = []map[string]any{
				{"id": "fld_name", "fieldKey": "opportunity.tripname", "name": "Trip Name", "dataType": "TEXT"},
				{"id": "fld_dest", "fieldKey": "opportunity.destination", "name": "Destination", "dataType": "TEXT"},
				{"id": "fld_vendor", "fieldKey": "opportunity.tripvendor", "name": "Trip Vendor",
					"dataType": "SINGLE_OPTIONS", "picklistOptions": []string{"Acme Travel", "Cuba Libre Tours"}},
			}
		case "contact":
			defs = []map[string]any{
				{"id": "fld_email", "fieldKey": "contact.email", "name": "Email", "dataType": "TEXT"},
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"customFields": defs})
	}).Methods("GET")

	r.HandleFunc("/contacts/", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"contacts": []map[string]any{
				{"id": "contact_1", "firstName": "Ana", "email": "ana@example.com"},
				{"id": "contact_2", "firstName": "Ben"},
			},
		})
	}).Methods("GET")

	r.HandleFunc("/opportunities/search", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Page    int `json:"page"`
			Limit   int `json:"limit"`
			Filters []struct {
				Field string `json:"field"`
				Value string `json:"value"`
			} `json:"filters"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))

		pipeline := ""
		for _, flt := range body.Filters {
			if flt.Field == "pipeline_id" {
				pipeline = flt.Value
			}
		}

		var opps []map[string]any
		switch pipeline {
		case testTripPipeline:
			start := (body.Page - 1) * body.Limit
			for i := start; i < start+body.Limit && i < tripCount; i++ {
				opps = append(opps, map[string]any{
					"id":        fmt.Sprintf("opp_trip_%d", i+1),
					"name":      fmt.Sprintf("Trip %d", i+1),
					"contactId": "contact_1",
					"status":    "open",
				})
			}
			json.NewEncoder(w).Encode(map[string]any{
				"opportunities": opps,
				"meta":          map[string]any{"total": tripCount},
			})
			return
		case testPassengerPipeline:
			if body.Page == 1 {
				opps = append(opps, map[string]any{
					"id":              "opp_pax_1",
					"name":            "Ana Diaz - Trip 1",
					"contactId":       passengerContactID,
					"pipelineStageId": "stage_p1",
					"customFields": []map[string]any{
						{"id": "fld_name", "fieldValueString": "Trip 1"},
					},
				})
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"opportunities": opps,
			"meta":          map[string]any{"total": len(opps)},
		})
	}).Methods("POST")

	return r
}

func TestFullSync(t *testing.T) {
	f := newSyncFixture(t, fullSyncServer(t, 150, "contact_1"))

	logEntry, err := f.svc.FullSync(context.Background())
	require.NoError(t, err)
	require.NotNil(t, logEntry)

	assert.Equal(t, models.SyncStatusSuccess, logEntry.Status)
	assert.Empty(t, logEntry.Errors)

	// 2 pipelines + 4 field defs + 2 contacts + 150 trips + 2 vendors
	// + 1 passenger + 1 link.
	assert.Equal(t, 162, logEntry.RecordsSynced)

	trips, _ := f.trips.List(context.Background())
	assert.Len(t, trips, 150)

	// Custom field sync rebuilt and persisted the mapping rows:
	// tripname binds twice, destination once.
	assert.Len(t, f.fieldMaps.rows, 3)

	// Vendor options imported from the dropdown definition.
	_, err = f.vendors.GetByName(context.Background(), "Acme Travel")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Acme Travel", "Cuba Libre Tours"},
		f.fields.options[VendorFieldKey])

	// The passenger got linked to Trip 1 by name.
	p, err := f.passengers.Get(context.Background(), "opp_pax_1")
	require.NoError(t, err)
	require.NotNil(t, p.TripID)
	linked, _ := f.trips.Get(context.Background(), *p.TripID)
	require.NotNil(t, linked.Name)
	assert.Equal(t, "Trip 1", *linked.Name)
}

func TestFullSyncPartialOnRecordErrors(t *testing.T) {
	// The passenger opportunity has no contact id, which fails that one
	// record but not the run.
	f := newSyncFixture(t, fullSyncServer(t, 2, ""))

	logEntry, err := f.svc.FullSync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusPartial, logEntry.Status)
	require.NotEmpty(t, logEntry.Errors)
	assert.Contains(t, logEntry.Errors[0], "opp_pax_1")
}

func TestFullSyncFailsWhenStepDies(t *testing.T) {
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"upstream down"}`, http.StatusBadGateway)
	}))

	_, err := f.svc.FullSync(context.Background())
	require.Error(t, err)

	// The first step is pipelines; the log records the failure.
	require.Len(t, f.logs.logs, 1)
	for _, entry := range f.logs.logs {
		assert.Equal(t, models.SyncStatusFailed, entry.status)
		require.NotEmpty(t, entry.errs)
		assert.Contains(t, entry.errs[len(entry.errs)-1], "pipelines")
	}
}
