package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// Request модели

// SalonRequest создание или полное обновление салона
type SalonRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OpeningTime string `json:"openingTime"` // HH:MM
	ClosingTime string `json:"closingTime"` // HH:MM
}

// SpecialistRequest создание или полное обновление мастера
type SpecialistRequest struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
}

// ProcedureRequest создание или полное обновление процедуры
type ProcedureRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Response модели

// SalonResponse салон
type SalonResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	OpeningTime string    `json:"openingTime"`
	ClosingTime string    `json:"closingTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SpecialistResponse мастер
type SpecialistResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
}

// ProcedureResponse процедура
type ProcedureResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель
func (r *SalonRequest) ToDomain(id int64) (*domain.Salon, error) {
	opening, err := parseOptionalTime(r.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := parseOptionalTime(r.ClosingTime)
	if err != nil {
		return nil, err
	}
	return &domain.Salon{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		OpeningTime: opening,
		ClosingTime: closing,
	}, nil
}

// ToDomain конвертирует запрос в domain модель
func (r *SpecialistRequest) ToDomain(id int64) *domain.Specialist {
	return &domain.Specialist{
		ID:             id,
		Name:           r.Name,
		Specialization: r.Specialization,
		Phone:          r.Phone,
		Email:          r.Email,
	}
}

// ToDomain конвертирует запрос в domain модель
func (r *ProcedureRequest) ToDomain(id int64) *domain.Procedure {
	return &domain.Procedure{ID: id, Name: r.Name, Price: r.Price}
}

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}
	return &SalonResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		OpeningTime: s.OpeningTime.String(),
		ClosingTime: s.ClosingTime.String(),
		CreatedAt:   s.CreatedAt,
	}
}

// FromDomainSpecialist конвертирует domain модель в DTO
func FromDomainSpecialist(s *domain.Specialist) *SpecialistResponse {
	if s == nil {
		return nil
	}
	return &SpecialistResponse{
		ID:             s.ID,
		Name:           s.Name,
		Specialization: s.Specialization,
		Phone:          s.Phone,
		Email:          s.Email,
	}
}

// FromDomainProcedure конвертирует domain модель в DTO
func FromDomainProcedure(p *domain.Procedure) *ProcedureResponse {
	if p == nil {
		return nil
	}
	return &ProcedureResponse{ID: p.ID, Name: p.Name, Price: p.Price}
}

func parseOptionalTime(s string) (types.TimeString, error) {
	if s == "" {
		return "", nil
	}
	return types.NewTimeStringFromString(s)
}
