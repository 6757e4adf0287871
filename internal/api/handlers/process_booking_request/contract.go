package process_booking_request

import "context"

type BookingRequestService interface {
	ProcessBookingRequest(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
