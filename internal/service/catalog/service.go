package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	procedureRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/procedure"
	salonRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/salon"
	specialistRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyBot/internal/service/catalog/models"
)

// Service сервис управления салонами, мастерами и процедурами
type Service struct {
	salonRepo      SalonRepository
	specialistRepo SpecialistRepository
	procedureRepo  ProcedureRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	salonRepo SalonRepository,
	specialistRepo SpecialistRepository,
	procedureRepo ProcedureRepository,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:      salonRepo,
		specialistRepo: specialistRepo,
		procedureRepo:  procedureRepo,
		logger:         logger,
	}
}

// Салоны

// ListSalons список салонов в порядке ID
func (s *Service) ListSalons(ctx context.Context) ([]models.SalonResponse, error) {
	salons, err := s.salonRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSalons: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSalons - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.SalonResponse, 0, len(salons))
	for _, salon := range salons {
		resp = append(resp, *models.FromDomainSalon(salon))
	}
	return resp, nil
}

// GetSalon салон по ID
func (s *Service) GetSalon(ctx context.Context, id int64) (*models.SalonResponse, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetSalon", id, err)
	}
	return models.FromDomainSalon(salon), nil
}

// CreateSalon создает салон
func (s *Service) CreateSalon(ctx context.Context, req *models.SalonRequest) (*models.SalonResponse, error) {
	salon, err := s.salonFromRequest(0, req)
	if err != nil {
		s.logger.Warn("CreateSalon: validation failed: %v", err)
		return nil, err
	}

	created, err := s.salonRepo.Create(ctx, salon)
	if err != nil {
		s.logger.Error("CreateSalon: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSalon: successfully created salon id=%d", created.ID)
	return models.FromDomainSalon(created), nil
}

// UpdateSalon полностью обновляет салон
func (s *Service) UpdateSalon(ctx context.Context, id int64, req *models.SalonRequest) (*models.SalonResponse, error) {
	salon, err := s.salonFromRequest(id, req)
	if err != nil {
		s.logger.Warn("UpdateSalon: validation failed for salon id=%d: %v", id, err)
		return nil, err
	}

	if err := s.salonRepo.Update(ctx, salon); err != nil {
		return nil, s.mapError("UpdateSalon", id, err)
	}

	s.logger.Info("UpdateSalon: successfully updated salon id=%d", id)
	return s.GetSalon(ctx, id)
}

// DeleteSalon удаляет салон без записей
func (s *Service) DeleteSalon(ctx context.Context, id int64) error {
	if err := s.salonRepo.Delete(ctx, id); err != nil {
		return s.mapError("DeleteSalon", id, err)
	}
	s.logger.Info("DeleteSalon: successfully deleted salon id=%d", id)
	return nil
}

// Мастера

// ListSpecialists список мастеров в порядке ID
func (s *Service) ListSpecialists(ctx context.Context) ([]models.SpecialistResponse, error) {
	specialists, err := s.specialistRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSpecialists: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpecialists - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.SpecialistResponse, 0, len(specialists))
	for _, specialist := range specialists {
		resp = append(resp, *models.FromDomainSpecialist(specialist))
	}
	return resp, nil
}

// GetSpecialist мастер по ID
func (s *Service) GetSpecialist(ctx context.Context, id int64) (*models.SpecialistResponse, error) {
	specialist, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetSpecialist", id, err)
	}
	return models.FromDomainSpecialist(specialist), nil
}

// CreateSpecialist создает мастера
func (s *Service) CreateSpecialist(ctx context.Context, req *models.SpecialistRequest) (*models.SpecialistResponse, error) {
	if err := validateSpecialist(req); err != nil {
		s.logger.Warn("CreateSpecialist: validation failed: %v", err)
		return nil, err
	}

	created, err := s.specialistRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("CreateSpecialist: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpecialist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpecialist: successfully created specialist id=%d", created.ID)
	return models.FromDomainSpecialist(created), nil
}

// UpdateSpecialist полностью обновляет мастера
func (s *Service) UpdateSpecialist(ctx context.Context, id int64, req *models.SpecialistRequest) (*models.SpecialistResponse, error) {
	if err := validateSpecialist(req); err != nil {
		s.logger.Warn("UpdateSpecialist: validation failed for specialist id=%d: %v", id, err)
		return nil, err
	}

	specialist := req.ToDomain(id)
	if err := s.specialistRepo.Update(ctx, specialist); err != nil {
		return nil, s.mapError("UpdateSpecialist", id, err)
	}

	s.logger.Info("UpdateSpecialist: successfully updated specialist id=%d", id)
	return models.FromDomainSpecialist(specialist), nil
}

// DeleteSpecialist удаляет мастера без записей
func (s *Service) DeleteSpecialist(ctx context.Context, id int64) error {
	if err := s.specialistRepo.Delete(ctx, id); err != nil {
		return s.mapError("DeleteSpecialist", id, err)
	}
	s.logger.Info("DeleteSpecialist: successfully deleted specialist id=%d", id)
	return nil
}

// Процедуры

// ListProcedures список процедур в порядке ID
func (s *Service) ListProcedures(ctx context.Context) ([]models.ProcedureResponse, error) {
	procedures, err := s.procedureRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListProcedures: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProcedures - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.ProcedureResponse, 0, len(procedures))
	for _, procedure := range procedures {
		resp = append(resp, *models.FromDomainProcedure(procedure))
	}
	return resp, nil
}

// GetProcedure процедура по ID
func (s *Service) GetProcedure(ctx context.Context, id int64) (*models.ProcedureResponse, error) {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetProcedure", id, err)
	}
	return models.FromDomainProcedure(procedure), nil
}

// CreateProcedure создает процедуру
func (s *Service) CreateProcedure(ctx context.Context, req *models.ProcedureRequest) (*models.ProcedureResponse, error) {
	if err := validateProcedure(req); err != nil {
		s.logger.Warn("CreateProcedure: validation failed: %v", err)
		return nil, err
	}

	created, err := s.procedureRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("CreateProcedure: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProcedure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProcedure: successfully created procedure id=%d", created.ID)
	return models.FromDomainProcedure(created), nil
}

// UpdateProcedure полностью обновляет процедуру
func (s *Service) UpdateProcedure(ctx context.Context, id int64, req *models.ProcedureRequest) (*models.ProcedureResponse, error) {
	if err := validateProcedure(req); err != nil {
		s.logger.Warn("UpdateProcedure: validation failed for procedure id=%d: %v", id, err)
		return nil, err
	}

	procedure := req.ToDomain(id)
	if err := s.procedureRepo.Update(ctx, procedure); err != nil {
		return nil, s.mapError("UpdateProcedure", id, err)
	}

	s.logger.Info("UpdateProcedure: successfully updated procedure id=%d", id)
	return models.FromDomainProcedure(procedure), nil
}

// DeleteProcedure удаляет процедуру без записей
func (s *Service) DeleteProcedure(ctx context.Context, id int64) error {
	if err := s.procedureRepo.Delete(ctx, id); err != nil {
		return s.mapError("DeleteProcedure", id, err)
	}
	s.logger.Info("DeleteProcedure: successfully deleted procedure id=%d", id)
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, salonRepo.ErrSalonNotFound),
		errors.Is(err, specialistRepo.ErrSpecialistNotFound),
		errors.Is(err, procedureRepo.ErrProcedureNotFound):
		s.logger.Warn("%s: id=%d not found", op, id)
		return ErrNotFound
	case errors.Is(err, salonRepo.ErrSalonInUse),
		errors.Is(err, specialistRepo.ErrSpecialistInUse),
		errors.Is(err, procedureRepo.ErrProcedureInUse):
		s.logger.Warn("%s: id=%d is in use", op, id)
		return ErrInUse
	default:
		s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) salonFromRequest(id int64, req *models.SalonRequest) (*domain.Salon, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength || len(req.Address) > domain.MaxAddressLength || len(req.Phone) > domain.MaxPhoneLength {
		return nil, fmt.Errorf("%w: name, address or phone is too long", ErrInvalidInput)
	}
	salon, err := req.ToDomain(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !salon.OpeningTime.IsZero() && !salon.ClosingTime.IsZero() && !salon.OpeningTime.IsBefore(salon.ClosingTime) {
		return nil, fmt.Errorf("%w: openingTime must be before closingTime", ErrInvalidInput)
	}
	return salon, nil
}

func validateSpecialist(req *models.SpecialistRequest) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if req.Phone != nil && len(*req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}
	return nil
}

func validateProcedure(req *models.ProcedureRequest) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
