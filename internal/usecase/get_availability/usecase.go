package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// UseCase расчет свободных часовых слотов салона или мастера на дату
// Наличие салона или мастера не проверяется: для неизвестного ID все слоты свободны
type UseCase struct {
	appointmentRepo AppointmentRepository
	slots           []types.TimeString
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// Окно слотов [firstHour, lastHour] включительно
func NewUseCase(
	appointmentRepo AppointmentRepository,
	firstHour int,
	lastHour int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slots:           generateHourlySlots(firstHour, lastHour),
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет расчет занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (domain.Availability, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	started := time.Now()
	if uc.metrics != nil {
		defer uc.metrics.ObserveAvailability(string(req.Entity), started)
	}

	date := dateOnly(req.Date)

	busy, err := uc.appointmentRepo.BusyTimes(ctx, req.Entity, req.EntityID, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load appointments %s=%d date=%s: %v",
			req.Entity, req.EntityID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	return buildAvailability(uc.slots, busy), nil
}

// Slots полный набор слотов окна по возрастанию
func (uc *UseCase) Slots() []types.TimeString {
	res := make([]types.TimeString, len(uc.slots))
	copy(res, uc.slots)
	return res
}
