package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// Appointment запись клиента к мастеру
// (SalonID, SpecialistID, Date, Time) уникальны
type Appointment struct {
	ID           int64
	SalonID      int64
	SpecialistID int64
	ProcedureID  int64
	ClientID     *int64
	Date         time.Time
	Time         types.TimeString
	ClientName   string
	ClientPhone  string
	StartTime    types.TimeString
	EndTime      types.TimeString
	CreatedAt    time.Time
}

// DateString дата записи в формате YYYY-MM-DD
func (a *Appointment) DateString() string {
	return a.Date.Format(DateFormat)
}

// AppointmentFilter фильтр списка записей
type AppointmentFilter struct {
	SalonID      *int64     // nil - все салоны
	SpecialistID *int64     // nil - все мастера
	Date         *time.Time // nil - все даты
}
