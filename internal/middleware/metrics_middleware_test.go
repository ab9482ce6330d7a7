package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsPathCollapsesIdentifiers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/trips/42", "/api/trips/:id"},
		{"/api/trips/public/0b1f6744-9f2e-4af3-8d61-0c2f8a9d1d11", "/api/trips/public/:id"},
		{"/api/sync/trips/hkTB0aqYUGJu9uQPYAGz", "/api/sync/trips/:id"},
		{"/api/vendors", "/api/vendors"},
		{"/health/ready", "/health/ready"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, metricsPath(tc.in), tc.in)
	}
}

func TestPanicRecoveryAnswersWith500(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/trips", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}
