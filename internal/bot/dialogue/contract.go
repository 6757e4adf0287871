package dialogue

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_booking_request"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
)

// Sender отправка сообщений в Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// SessionStore хранилище состояния диалога
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*domain.DialogueState, error)
	Save(ctx context.Context, state *domain.DialogueState) error
	Delete(ctx context.Context, chatID int64) error
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	List(ctx context.Context) ([]*domain.Salon, error)
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// SpecialistRepository интерфейс репозитория мастеров
type SpecialistRepository interface {
	List(ctx context.Context) ([]*domain.Specialist, error)
}

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	List(ctx context.Context) ([]*domain.Procedure, error)
	GetByID(ctx context.Context, id int64) (*domain.Procedure, error)
}

// AvailabilityCalculator расчет свободных слотов
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *get_availability.Request) (domain.Availability, error)
}

// AppointmentCreator создание записи
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// BookingRequestCreator создание заявки на консультацию
type BookingRequestCreator interface {
	Execute(ctx context.Context, req *create_booking_request.Request) (*domain.BookingRequest, error)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
