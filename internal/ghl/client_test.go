package ghl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("loc_123", "token", WithBaseURL(srv.URL), WithMinInterval(0))
}

func TestGetOpportunity(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opportunities/opp_1", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("Version"))
		json.NewEncoder(w).Encode(map[string]any{
			"opportunity": map[string]any{
				"id":   "opp_1",
				"name": "Havana Spring",
			},
		})
	}))

	opp, err := c.GetOpportunity(context.Background(), "opp_1")
	require.NoError(t, err)
	assert.Equal(t, "opp_1", opp.ID)
	assert.Equal(t, "Havana Spring", opp.Name)
}

func TestErrorCarriesStatusAndMessage(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Opportunity not found"})
	}))

	_, err := c.GetOpportunity(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Opportunity not found", apiErr.Message)
}

func TestTransportErrorHasZeroStatus(t *testing.T) {
	c := NewClient("loc_123", "token",
		WithBaseURL("http://127.0.0.1:1"), WithMinInterval(0))

	_, err := c.GetOpportunity(context.Background(), "opp_1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestEmptyBodySuccess(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.DeleteOpportunity(context.Background(), "opp_1")
	assert.NoError(t, err)
}

func TestRateGateSpacesCalls(t *testing.T) {
	var stamps []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("loc_123", "token",
		WithBaseURL(srv.URL), WithMinInterval(40*time.Millisecond))

	require.NoError(t, c.DeleteOpportunity(context.Background(), "a"))
	require.NoError(t, c.DeleteOpportunity(context.Background(), "b"))

	require.Len(t, stamps, 2)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 35*time.Millisecond)
}

func TestSearchOpportunitiesFilters(t *testing.T) {
	var body searchRequest
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opportunities/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"opportunities": []any{}})
	}))

	_, err := c.SearchOpportunities(context.Background(), OpportunitySearch{
		PipelineID: "pipe_1",
		Page:       3,
	})
	require.NoError(t, err)

	assert.Equal(t, "loc_123", body.LocationID)
	assert.Equal(t, 100, body.Limit)
	assert.Equal(t, 3, body.Page)
	require.Len(t, body.Filters, 1)
	assert.Equal(t, "pipeline_id", body.Filters[0].Field)
	assert.Equal(t, "eq", body.Filters[0].Operator)
	assert.Equal(t, "pipe_1", body.Filters[0].Value)
}

func TestSearchContactsCursorBeatsOffset(t *testing.T) {
	var query map[string][]string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{"contacts": []any{}})
	}))

	_, err := c.SearchContacts(context.Background(), ContactSearch{
		Offset:       200,
		StartAfter:   1700000000000,
		StartAfterID: "contact_99",
	})
	require.NoError(t, err)

	assert.Equal(t, "1700000000000", query["startAfter"][0])
	assert.Equal(t, "contact_99", query["startAfterId"][0])
	assert.NotContains(t, query, "offset")
}

func TestUpsertOpportunityCustomField(t *testing.T) {
	var body map[string]map[string]string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opportunities/opp_1/upsert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))

	err := c.UpsertOpportunityCustomField(context.Background(), "opp_1",
		"opportunity.tripname", "Havana Spring")
	require.NoError(t, err)
	assert.Equal(t, "Havana Spring", body["customFields"]["opportunity.tripname"])
}

func TestGetCustomFieldByKey(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locations/loc_123/customFields", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"customFields": []map[string]any{
				{"id": "fld_1", "fieldKey": "opportunity.tripvendor", "picklistOptions": []string{"Acme Travel"}},
				{"id": "fld_2", "fieldKey": "opportunity.tripname"},
			},
		})
	}))

	def, err := c.GetCustomFieldByKey(context.Background(), "opportunity", "opportunity.tripvendor")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "fld_1", def.ID)
	assert.Equal(t, []string{"Acme Travel"}, def.OptionValues())

	missing, err := c.GetCustomFieldByKey(context.Background(), "opportunity", "opportunity.nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
