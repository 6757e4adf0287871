package list_appointments

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(httptest.NewRequest(http.MethodGet, "/appointments?salonId=1&date=2025-01-15", nil))
	require.NoError(t, err)
	require.NotNil(t, req.SalonID)
	assert.Equal(t, int64(1), *req.SalonID)
	assert.Nil(t, req.SpecialistID)
	require.NotNil(t, req.Date)
	assert.Equal(t, "2025-01-15", req.Date.Format("2006-01-02"))

	req, err = ToServiceRequest(httptest.NewRequest(http.MethodGet, "/appointments", nil))
	require.NoError(t, err)
	assert.Nil(t, req.SalonID)
	assert.Nil(t, req.Date)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, target := range []string{
		"/appointments?salonId=abc",
		"/appointments?specialistId=-1",
		"/appointments?date=15.01.2025",
	} {
		_, err := ToServiceRequest(httptest.NewRequest(http.MethodGet, target, nil))
		assert.Error(t, err, target)
	}
}
