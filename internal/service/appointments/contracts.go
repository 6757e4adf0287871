package appointments

import (
	"context"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id int64) error
}

// BookingRequestRepository интерфейс репозитория заявок на консультацию
type BookingRequestRepository interface {
	List(ctx context.Context, status *domain.BookingRequestStatus) ([]*domain.BookingRequest, error)
	MarkProcessed(ctx context.Context, id int64) error
}

// AppointmentCreator создание записи (use case)
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
