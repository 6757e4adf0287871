package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BeautyBot/internal/infra/storage/pgerrors"
	specialistRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyBot/pkg/ptr"
)

// Результаты записи для метрик
const (
	resultCreated   = "created"
	resultDuplicate = "duplicate"
	resultRejected  = "rejected"
	resultError     = "error"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	specialistRepo  SpecialistRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	clock           Clock
	metrics         Metrics
	logger          Logger
	firstHour       int
	lastHour        int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	specialistRepo SpecialistRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	firstHour int,
	lastHour int,
	clock Clock,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		specialistRepo:  specialistRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		clock:           clock,
		metrics:         metrics,
		logger:          logger,
		firstHour:       firstHour,
		lastHour:        lastHour,
	}
}

// Execute создает запись в сериализуемой транзакции
// Уникальность (салон, мастер, дата, время) гарантирует ограничение БД: при гонке
// вторая транзакция получает ErrSlotTaken и ничего не сохраняет.
// Ошибка сериализации (40001) после исчерпания повторов тоже означает ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := validateRequest(req, uc.firstHour, uc.lastHour, today); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.observe(resultRejected)
		return nil, err
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)

	uc.logger.Info("CreateAppointment: salon=%d, specialist=%d, procedure=%d, date=%s, time=%s",
		req.SalonID, req.SpecialistID, req.ProcedureID, date.Format(domain.DateFormat), req.Time)

	endTime, err := req.Time.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		uc.observe(resultRejected)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment
	autoAssigned := false

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Мастер не выбран - назначаем свободного
		specialistID := req.SpecialistID
		if specialistID == 0 {
			specialist, err := uc.specialistRepo.FindFree(txCtx, date, req.Time)
			if err != nil {
				if errors.Is(err, specialistRepo.ErrNoFreeSpecialist) {
					return ErrNoFreeSpecialist
				}
				return fmt.Errorf("%w: failed to find free specialist: %w", ErrInternal, err)
			}
			specialistID = specialist.ID
			autoAssigned = true
		}

		// 2. Клиент по номеру телефона
		client, err := uc.clientRepo.Upsert(txCtx, &domain.Client{
			Name:        strings.TrimSpace(req.ClientName),
			PhoneNumber: strings.TrimSpace(req.ClientPhone),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to upsert client: %w", ErrInternal, err)
		}

		// 3. Сама запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			SalonID:      req.SalonID,
			SpecialistID: specialistID,
			ProcedureID:  req.ProcedureID,
			ClientID:     ptr.Ptr(client.ID),
			Date:         date,
			Time:         req.Time,
			ClientName:   client.Name,
			ClientPhone:  client.PhoneNumber,
			StartTime:    req.Time,
			EndTime:      endTime,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrDuplicateAppointment):
				return ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
			default:
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("CreateAppointment: slot %s %s already taken in salon=%d",
				date.Format(domain.DateFormat), req.Time, req.SalonID)
			uc.observe(resultDuplicate)
			return nil, err
		case pgerrors.IsSerializationFailure(err):
			// повторы транзакции исчерпаны: параллельная запись заняла слот или мастера
			uc.logger.Warn("CreateAppointment: serialization conflict for %s %s in salon=%d: %v",
				date.Format(domain.DateFormat), req.Time, req.SalonID, err)
			uc.observe(resultDuplicate)
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotTaken)
		case errors.Is(err, ErrNoFreeSpecialist), errors.Is(err, ErrInvalidSelection):
			uc.logger.Warn("CreateAppointment: rejected: %v", err)
			uc.observe(resultRejected)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateAppointment: %v", err)
			uc.observe(resultError)
			return nil, err
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			uc.observe(resultError)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d (specialist=%d, auto=%t)",
		result.ID, result.SpecialistID, autoAssigned)
	uc.observe(resultCreated)

	return &Response{
		ID:           result.ID,
		SalonID:      result.SalonID,
		SpecialistID: result.SpecialistID,
		ProcedureID:  result.ProcedureID,
		ClientID:     ptr.Value(result.ClientID),
		Date:         result.Date,
		Time:         result.Time,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		ClientName:   result.ClientName,
		ClientPhone:  result.ClientPhone,
		AutoAssigned: autoAssigned,
		CreatedAt:    result.CreatedAt,
	}, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.IncAppointmentCommit(result)
	}
}
