package fieldmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripbuilder/internal/models"
)

func TestApplyTripValuesMergesOnlyPresentColumns(t *testing.T) {
	existing := 18
	trip := &models.Trip{MaxPassengers: &existing}

	ApplyTripValues(trip, map[string]any{
		"name":         "Havana Spring",
		"arrival_date": time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "Havana Spring", *trip.Name)
	assert.Equal(t, 18, *trip.MaxPassengers, "absent columns keep their values")
}

func TestTripFieldValuesEmitsOnlyMappedColumns(t *testing.T) {
	name := "Havana Spring"
	tripName := "legacy label"
	trip := &models.Trip{Name: &name, TripName: &tripName}

	vals := TripFieldValues(trip)

	assert.Equal(t, "Havana Spring", vals["name"])
	// trip_name is a local passengers-side concept; the trips table
	// pushes the name column instead
	assert.NotContains(t, vals, "trip_name")
}
