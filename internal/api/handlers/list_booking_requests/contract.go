package list_booking_requests

import (
	"context"

	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
)

type BookingRequestService interface {
	ListBookingRequests(ctx context.Context, status string) ([]models.BookingRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
