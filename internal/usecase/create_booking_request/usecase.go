package create_booking_request

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

// Request заявка на обратный звонок
type Request struct {
	ClientName  string
	ClientPhone string
	SalonID     *int64 // салон, если уже выбран
}

// UseCase use case создания заявки на консультацию
type UseCase struct {
	repo   BookingRequestRepository
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo BookingRequestRepository, logger Logger) *UseCase {
	return &UseCase{repo: repo, logger: logger}
}

// Execute сохраняет заявку со статусом new
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BookingRequest, error) {
	if req == nil || strings.TrimSpace(req.ClientPhone) == "" {
		uc.logger.Warn("CreateBookingRequest: phone is required")
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	created, err := uc.repo.Create(ctx, &domain.BookingRequest{
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		SalonID:     req.SalonID,
		Status:      domain.BookingRequestNew,
	})
	if err != nil {
		uc.logger.Error("CreateBookingRequest: failed to create: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBookingRequest: created request id=%d", created.ID)
	return created, nil
}
