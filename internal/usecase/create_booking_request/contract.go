package create_booking_request

import (
	"context"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

// BookingRequestRepository интерфейс репозитория заявок
type BookingRequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
