package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

// Request модели

// AppointmentRequest создание или полное обновление записи
type AppointmentRequest struct {
	SalonID      int64  `json:"salonId"`
	SpecialistID int64  `json:"specialistId"` // 0 при создании - назначить свободного мастера
	ProcedureID  int64  `json:"procedureId"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM
	ClientName   string `json:"clientName"`
	ClientPhone  string `json:"clientPhone"`
}

// ListAppointmentsRequest фильтр списка записей
type ListAppointmentsRequest struct {
	SalonID      *int64
	SpecialistID *int64
	Date         *time.Time
}

// Response модели

// AppointmentResponse запись
type AppointmentResponse struct {
	ID           int64     `json:"id"`
	SalonID      int64     `json:"salonId"`
	SpecialistID int64     `json:"specialistId"`
	ProcedureID  int64     `json:"procedureId"`
	ClientID     *int64    `json:"clientId,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	ClientName   string    `json:"clientName"`
	ClientPhone  string    `json:"clientPhone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// BookingRequestResponse заявка на консультацию
type BookingRequestResponse struct {
	ID          int64     `json:"id"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	SalonID     *int64    `json:"salonId,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:           a.ID,
		SalonID:      a.SalonID,
		SpecialistID: a.SpecialistID,
		ProcedureID:  a.ProcedureID,
		ClientID:     a.ClientID,
		Date:         a.DateString(),
		Time:         a.Time.String(),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		ClientName:   a.ClientName,
		ClientPhone:  a.ClientPhone,
		CreatedAt:    a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}

// FromDomainBookingRequest конвертирует domain модель в DTO
func FromDomainBookingRequest(r *domain.BookingRequest) BookingRequestResponse {
	return BookingRequestResponse{
		ID:          r.ID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		SalonID:     r.SalonID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}
