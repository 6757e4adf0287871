package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// BusyTimes возвращает занятые слоты салона или мастера на дату
	BusyTimes(ctx context.Context, entity domain.EntityType, id int64, date time.Time) ([]types.TimeString, error)
}

// Metrics наблюдение за длительностью расчета
type Metrics interface {
	ObserveAvailability(entity string, started time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
