package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbuilder/internal/models"
)

func addTrip(t *testing.T, store *fakeTripStore, name string) *models.Trip {
	t.Helper()
	trip := &models.Trip{Name: &name}
	require.NoError(t, store.Create(context.Background(), trip))
	return trip
}

func addUnlinkedPassenger(t *testing.T, store *fakePassengerStore, id, tripName string) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), &models.Passenger{
		ID:       id,
		TripName: &tripName,
	}))
}

func TestLinkAllExactMatchWins(t *testing.T) {
	trips := newFakeTripStore()
	passengers := newFakePassengerStore()
	paris := addTrip(t, trips, "Paris")
	addTrip(t, trips, "Paris Spring")
	addUnlinkedPassenger(t, passengers, "pax_1", "paris")

	linked, unmatched, err := NewTripLinkService(trips, passengers).LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, linked)
	assert.Empty(t, unmatched)

	p, _ := passengers.Get(context.Background(), "pax_1")
	require.NotNil(t, p.TripID)
	assert.Equal(t, paris.ID, *p.TripID, "exact match beats the longer substring match")
}

func TestLinkAllSubstringMatch(t *testing.T) {
	trips := newFakeTripStore()
	passengers := newFakePassengerStore()
	tour := addTrip(t, trips, "Tuscany Food Tour")
	addUnlinkedPassenger(t, passengers, "pax_1", "Tuscany")
	addUnlinkedPassenger(t, passengers, "pax_2", "Tuscany Food Tour 2026 departure")

	linked, unmatched, err := NewTripLinkService(trips, passengers).LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, linked)
	assert.Empty(t, unmatched)

	for _, id := range []string{"pax_1", "pax_2"} {
		p, _ := passengers.Get(context.Background(), id)
		require.NotNil(t, p.TripID)
		assert.Equal(t, tour.ID, *p.TripID)
	}
}

func TestLinkAllShortFragmentsNeverMatch(t *testing.T) {
	trips := newFakeTripStore()
	passengers := newFakePassengerStore()
	addTrip(t, trips, "European Highlights")
	addUnlinkedPassenger(t, passengers, "pax_1", "EU")

	linked, unmatched, err := NewTripLinkService(trips, passengers).LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, linked)
	assert.Equal(t, []string{"EU"}, unmatched)
}

func TestLinkAllShortNamesSkipExactMatchesToo(t *testing.T) {
	trips := newFakeTripStore()
	passengers := newFakePassengerStore()
	addTrip(t, trips, "EU Adventure")
	addTrip(t, trips, "EU")
	addUnlinkedPassenger(t, passengers, "pax_1", "EU")

	linked, unmatched, err := NewTripLinkService(trips, passengers).LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, linked, "short names must never match, even exactly")
	assert.Equal(t, []string{"EU"}, unmatched)

	p, _ := passengers.Get(context.Background(), "pax_1")
	assert.Nil(t, p.TripID)
}

func TestLinkAllPrefersLongestThenLexicographic(t *testing.T) {
	trips := newFakeTripStore()
	passengers := newFakePassengerStore()
	addTrip(t, trips, "Cuba")
	winner := addTrip(t, trips, "Cuba Extended")
	addUnlinkedPassenger(t, passengers, "pax_1", "Cuba Extended Adventure")

	linked, _, err := NewTripLinkService(trips, passengers).LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, linked)

	p, _ := passengers.Get(context.Background(), "pax_1")
	require.NotNil(t, p.TripID)
	assert.Equal(t, winner.ID, *p.TripID)
}

func TestLinkAllDeduplicatesUnmatchedNames(t *testing.T) {
	trips := newFakeTripStore()
	passengers := newFakePassengerStore()
	addUnlinkedPassenger(t, passengers, "pax_1", "Ghost Trip")
	addUnlinkedPassenger(t, passengers, "pax_2", "Ghost Trip")

	linked, unmatched, err := NewTripLinkService(trips, passengers).LinkAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, linked)
	assert.Equal(t, []string{"Ghost Trip"}, unmatched)
}
