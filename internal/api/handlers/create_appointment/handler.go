package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные записи: нужны дата YYYY-MM-DD, время HH:MM в пределах 10:00-18:00, имя и телефон"
	msgSlotTaken          = "выбранное время уже занято"
	msgNoFreeSpecialist   = "на выбранное время нет свободных мастеров"
	msgInvalidSelection   = "салон, мастер или процедура не найдены"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// specialistId = 0 - мастер назначается автоматически
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: salon_id=%d, specialist_id=%d, date=%s, time=%s",
				req.SalonID, req.SpecialistID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, appointments.ErrNoFreeSpecialist):
			h.logger.Warn("POST /appointments - No free specialist: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgNoFreeSpecialist)

		case errors.Is(err, appointments.ErrInvalidSelection):
			h.logger.Warn("POST /appointments - Invalid selection: salon_id=%d, specialist_id=%d, procedure_id=%d",
				req.SalonID, req.SpecialistID, req.ProcedureID)
			handlers.RespondNotFound(w, msgInvalidSelection)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: salon_id=%d, error=%v", req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, salon_id=%d",
		result.ID, result.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
