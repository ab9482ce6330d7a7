package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbuilder/internal/models"
)

func pdfFixtures() (*models.Passenger, *models.Trip, *models.Contact) {
	first := "Ana"
	last := "Diaz"
	tripName := "Havana Spring"
	dest := "Havana, Cuba"
	arrival := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)
	price := 3150.50

	p := &models.Passenger{ID: "opp_pax_1", FirstName: &first, LastName: &last}
	trip := &models.Trip{
		ID: 7, Name: &tripName, Destination: &dest,
		ArrivalDate: &arrival, ReturnDate: &ret,
		TripStandardLevelPricing: &price, Currency: "USD",
	}
	c := &models.Contact{ID: "contact_1", FirstName: &first, LastName: &last}
	return p, trip, c
}

func TestGenerateMOU(t *testing.T) {
	p, trip, c := pdfFixtures()

	data, docID, err := NewPDFService().GenerateMOU(p, trip, c)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(docID, "MOU-opp_pax_1-"))
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateAffidavit(t *testing.T) {
	p, trip, c := pdfFixtures()

	data, docID, err := NewPDFService().GenerateAffidavit(p, trip, c)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(docID, "AFFIDAVIT-opp_pax_1-"))
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateReservation(t *testing.T) {
	p, trip, c := pdfFixtures()

	data, docID, err := NewPDFService().GenerateReservation(p, trip, c)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(docID, "RES-opp_pax_1-"))
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateWithSparseRecords(t *testing.T) {
	// All optional fields nil; rendering must not panic or error.
	p := &models.Passenger{ID: "opp_pax_2"}
	trip := &models.Trip{ID: 8}
	c := &models.Contact{ID: "contact_2"}

	svc := NewPDFService()
	for _, gen := range []func(*models.Passenger, *models.Trip, *models.Contact) ([]byte, string, error){
		svc.GenerateMOU, svc.GenerateAffidavit, svc.GenerateReservation,
	} {
		data, _, err := gen(p, trip, c)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestGenerateWithSignatureImage(t *testing.T) {
	p, trip, c := pdfFixtures()
	// 1x1 transparent PNG.
	sig := "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	p.PassengerSignature = &sig

	data, _, err := NewPDFService().GenerateMOU(p, trip, c)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDecodeSignature(t *testing.T) {
	png := "data:image/png;base64,aGVsbG8="
	raw, kind, ok := decodeSignature(&png)
	require.True(t, ok)
	assert.Equal(t, "PNG", kind)
	assert.Equal(t, []byte("hello"), raw)

	jpg := "data:image/jpeg;base64,aGVsbG8="
	_, kind, ok = decodeSignature(&jpg)
	require.True(t, ok)
	assert.Equal(t, "JPG", kind)

	bad := "not a data url"
	_, _, ok = decodeSignature(&bad)
	assert.False(t, ok)

	_, _, ok = decodeSignature(nil)
	assert.False(t, ok)
}
