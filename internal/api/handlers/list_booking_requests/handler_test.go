package list_booking_requests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
	"github.com/m04kA/SMC-BeautyBot/pkg/logger"
)

type stubService struct {
	err       error
	gotStatus string
}

func (s *stubService) ListBookingRequests(_ context.Context, status string) ([]models.BookingRequestResponse, error) {
	s.gotStatus = status
	if s.err != nil {
		return nil, s.err
	}
	return []models.BookingRequestResponse{
		{ID: 1, ClientName: "Ольга", ClientPhone: "+7 000 000-00-00", Status: "new"},
	}, nil
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_List(t *testing.T) {
	svc := &stubService{}

	rec := get(NewHandler(svc, logger.NewNop()), "/api/v1/booking-requests?status=new")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new", svc.gotStatus)
	assert.Contains(t, rec.Body.String(), `"clientPhone":"+7 000 000-00-00"`)
}

func TestHandle_NoStatus(t *testing.T) {
	svc := &stubService{}

	rec := get(NewHandler(svc, logger.NewNop()), "/api/v1/booking-requests")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.gotStatus)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown status", err: fmt.Errorf("%w: status %q", appointments.ErrInvalidInput, "done"), status: http.StatusBadRequest},
		{name: "internal", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(NewHandler(&stubService{err: tt.err}, logger.NewNop()), "/api/v1/booking-requests?status=done")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
