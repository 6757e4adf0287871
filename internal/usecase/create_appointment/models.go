package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID      int64
	SpecialistID int64 // 0 - назначить свободного мастера
	ProcedureID  int64
	Date         time.Time        // без времени
	Time         types.TimeString // начало часового слота, например "10:00"
	ClientName   string
	ClientPhone  string
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64
	SalonID      int64
	SpecialistID int64
	ProcedureID  int64
	ClientID     int64
	Date         time.Time
	Time         types.TimeString
	StartTime    types.TimeString
	EndTime      types.TimeString
	ClientName   string
	ClientPhone  string
	AutoAssigned bool // мастер назначен автоматически
	CreatedAt    time.Time
}
