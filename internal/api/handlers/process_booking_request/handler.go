package process_booking_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
)

type Handler struct {
	service BookingRequestService
	logger  Logger
}

func NewHandler(service BookingRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-requests/{requestId}/processed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /booking-requests/{id}/processed - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	if err := h.service.ProcessBookingRequest(r.Context(), requestID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrBookingRequestNotFound):
			h.logger.Warn("POST /booking-requests/{id}/processed - Not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /booking-requests/{id}/processed - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests/{id}/processed - Request processed: request_id=%d", requestID)
	handlers.RespondNoContent(w)
}
