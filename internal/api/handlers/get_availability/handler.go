package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
)

const (
	msgMissingParams = "параметры entity, id и date обязательны"
	msgInvalidParams = "некорректные параметры: entity = salon|master, id > 0, date в формате YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: entity (salon|master), id, date (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	entity, idStr, dateStr := query.Get("entity"), query.Get("id"), query.Get("date")

	if entity == "" || idStr == "" || dateStr == "" {
		h.logger.Warn("GET /availability - Missing parameters: entity=%q, id=%q, date=%q", entity, idStr, dateStr)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(entity, idStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability - Failed to get availability: entity=%s, id=%d, error=%v",
				entity, useCaseReq.EntityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: entity=%s, id=%d, date=%s, free=%d",
		entity, useCaseReq.EntityID, dateStr, len(result.FreeSlots()))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
