package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/appointment"
	bookingRequestRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/bookingrequest"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// Service административные операции над записями и заявками
type Service struct {
	appointmentRepo    AppointmentRepository
	bookingRequestRepo BookingRequestRepository
	creator            AppointmentCreator
	logger             Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	bookingRequestRepo BookingRequestRepository,
	creator AppointmentCreator,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:    appointmentRepo,
		bookingRequestRepo: bookingRequestRepo,
		creator:            creator,
		logger:             logger,
	}
}

// List список записей по фильтру
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter := domain.AppointmentFilter{
		SalonID:      req.SalonID,
		SpecialistID: req.SpecialistID,
		Date:         req.Date,
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// GetByID запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointment(a), nil
}

// Create создает запись тем же путем, что и бот
func (s *Service) Create(ctx context.Context, req *models.AppointmentRequest) (*models.AppointmentResponse, error) {
	date, slot, err := parseDateTime(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	resp, err := s.creator.Execute(ctx, &create_appointment.Request{
		SalonID:      req.SalonID,
		SpecialistID: req.SpecialistID,
		ProcedureID:  req.ProcedureID,
		Date:         date,
		Time:         slot,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
	})
	if err != nil {
		return nil, mapCreateError(err)
	}

	return &models.AppointmentResponse{
		ID:           resp.ID,
		SalonID:      resp.SalonID,
		SpecialistID: resp.SpecialistID,
		ProcedureID:  resp.ProcedureID,
		ClientID:     &resp.ClientID,
		Date:         resp.Date.Format(domain.DateFormat),
		Time:         resp.Time.String(),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		ClientName:   resp.ClientName,
		ClientPhone:  resp.ClientPhone,
		CreatedAt:    resp.CreatedAt,
	}, nil
}

// Update полностью обновляет запись; мастер обязателен
func (s *Service) Update(ctx context.Context, id int64, req *models.AppointmentRequest) (*models.AppointmentResponse, error) {
	date, slot, err := parseDateTime(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%d: %v", id, err)
		return nil, err
	}
	if req.SalonID <= 0 || req.SpecialistID <= 0 || req.ProcedureID <= 0 {
		return nil, fmt.Errorf("%w: salonId, specialistId and procedureId are required", ErrInvalidInput)
	}
	if req.ClientName == "" || req.ClientPhone == "" {
		return nil, fmt.Errorf("%w: clientName and clientPhone are required", ErrInvalidInput)
	}

	existing, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	endTime, err := slot.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing.SalonID = req.SalonID
	existing.SpecialistID = req.SpecialistID
	existing.ProcedureID = req.ProcedureID
	existing.Date = date
	existing.Time = slot
	existing.StartTime = slot
	existing.EndTime = endTime
	existing.ClientName = req.ClientName
	existing.ClientPhone = req.ClientPhone

	if err := s.appointmentRepo.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrDuplicateAppointment):
			s.logger.Warn("Update: slot taken for appointment id=%d", id)
			return nil, ErrSlotTaken
		case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
			return nil, ErrInvalidSelection
		default:
			s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated appointment id=%d", id)
	return models.FromDomainAppointment(existing), nil
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// ListBookingRequests заявки на консультацию, опционально по статусу
func (s *Service) ListBookingRequests(ctx context.Context, status string) ([]models.BookingRequestResponse, error) {
	var filter *domain.BookingRequestStatus
	switch domain.BookingRequestStatus(status) {
	case "":
	case domain.BookingRequestNew, domain.BookingRequestProcessed:
		st := domain.BookingRequestStatus(status)
		filter = &st
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	list, err := s.bookingRequestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookingRequests: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookingRequests - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.BookingRequestResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, models.FromDomainBookingRequest(r))
	}
	return resp, nil
}

// ProcessBookingRequest отмечает заявку обработанной
func (s *Service) ProcessBookingRequest(ctx context.Context, id int64) error {
	if err := s.bookingRequestRepo.MarkProcessed(ctx, id); err != nil {
		if errors.Is(err, bookingRequestRepo.ErrBookingRequestNotFound) {
			return ErrBookingRequestNotFound
		}
		s.logger.Error("ProcessBookingRequest: repository error for request id=%d: %v", id, err)
		return fmt.Errorf("%w: ProcessBookingRequest - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("ProcessBookingRequest: request id=%d processed", id)
	return nil
}

func parseDateTime(req *models.AppointmentRequest) (time.Time, types.TimeString, error) {
	if req == nil {
		return time.Time{}, "", fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}
	slot, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid time %q", ErrInvalidInput, req.Time)
	}
	return date, slot, nil
}

func mapCreateError(err error) error {
	switch {
	case errors.Is(err, create_appointment.ErrSlotTaken):
		return ErrSlotTaken
	case errors.Is(err, create_appointment.ErrNoFreeSpecialist):
		return ErrNoFreeSpecialist
	case errors.Is(err, create_appointment.ErrInvalidSelection):
		return ErrInvalidSelection
	case errors.Is(err, create_appointment.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
