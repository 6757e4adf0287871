package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

// validateRequest валидирует входные данные запроса
// today - текущая дата (полночь UTC), записи на прошедшие даты не принимаются
func validateRequest(req *Request, firstHour, lastHour int, today time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.SpecialistID < 0 {
		return fmt.Errorf("%w: specialistID must not be negative", ErrInvalidInput)
	}

	if req.ProcedureID <= 0 {
		return fmt.Errorf("%w: procedureID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, date.Format(domain.DateFormat))
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// Слоты только на целый час внутри окна
	if req.Time.Minutes()%60 != 0 || req.Time.Hour() < firstHour || req.Time.Hour() > lastHour {
		return fmt.Errorf("%w: time %s is outside of %02d:00-%02d:00 hourly slots", ErrInvalidInput, req.Time, firstHour, lastHour)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	if len(req.ClientName) > domain.MaxNameLength || len(req.ClientPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: client name or phone is too long", ErrInvalidInput)
	}

	return nil
}
