package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBot/internal/service/catalog"
	"github.com/m04kA/SMC-BeautyBot/internal/service/catalog/models"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные"
	msgSalonNotFound      = "салон не найден"
	msgSpecialistNotFound = "мастер не найден"
	msgProcedureNotFound  = "процедура не найдена"
	msgInUse              = "на запись есть ссылки, удаление невозможно"
)

// Handler CRUD салонов, мастеров и процедур
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Салоны

// ListSalons GET /api/v1/salons
func (h *Handler) ListSalons(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSalons(r.Context())
	if err != nil {
		h.respondError(w, "GET /salons", 0, err, msgSalonNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetSalon GET /api/v1/salons/{id}
func (h *Handler) GetSalon(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "GET /salons/{id}")
	if !ok {
		return
	}
	result, err := h.service.GetSalon(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /salons/{id}", id, err, msgSalonNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateSalon POST /api/v1/salons
func (h *Handler) CreateSalon(w http.ResponseWriter, r *http.Request) {
	var req models.SalonRequest
	if !h.decode(w, r, "POST /salons", &req) {
		return
	}
	result, err := h.service.CreateSalon(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /salons", 0, err, msgSalonNotFound)
		return
	}
	h.logger.Info("POST /salons - Salon created: salon_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateSalon PUT /api/v1/salons/{id}
func (h *Handler) UpdateSalon(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /salons/{id}")
	if !ok {
		return
	}
	var req models.SalonRequest
	if !h.decode(w, r, "PUT /salons/{id}", &req) {
		return
	}
	result, err := h.service.UpdateSalon(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /salons/{id}", id, err, msgSalonNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteSalon DELETE /api/v1/salons/{id}
func (h *Handler) DeleteSalon(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /salons/{id}")
	if !ok {
		return
	}
	if err := h.service.DeleteSalon(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /salons/{id}", id, err, msgSalonNotFound)
		return
	}
	handlers.RespondNoContent(w)
}

// Мастера

// ListSpecialists GET /api/v1/specialists
func (h *Handler) ListSpecialists(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSpecialists(r.Context())
	if err != nil {
		h.respondError(w, "GET /specialists", 0, err, msgSpecialistNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetSpecialist GET /api/v1/specialists/{id}
func (h *Handler) GetSpecialist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "GET /specialists/{id}")
	if !ok {
		return
	}
	result, err := h.service.GetSpecialist(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /specialists/{id}", id, err, msgSpecialistNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateSpecialist POST /api/v1/specialists
func (h *Handler) CreateSpecialist(w http.ResponseWriter, r *http.Request) {
	var req models.SpecialistRequest
	if !h.decode(w, r, "POST /specialists", &req) {
		return
	}
	result, err := h.service.CreateSpecialist(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /specialists", 0, err, msgSpecialistNotFound)
		return
	}
	h.logger.Info("POST /specialists - Specialist created: specialist_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateSpecialist PUT /api/v1/specialists/{id}
func (h *Handler) UpdateSpecialist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /specialists/{id}")
	if !ok {
		return
	}
	var req models.SpecialistRequest
	if !h.decode(w, r, "PUT /specialists/{id}", &req) {
		return
	}
	result, err := h.service.UpdateSpecialist(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /specialists/{id}", id, err, msgSpecialistNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteSpecialist DELETE /api/v1/specialists/{id}
func (h *Handler) DeleteSpecialist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /specialists/{id}")
	if !ok {
		return
	}
	if err := h.service.DeleteSpecialist(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /specialists/{id}", id, err, msgSpecialistNotFound)
		return
	}
	handlers.RespondNoContent(w)
}

// Процедуры

// ListProcedures GET /api/v1/procedures
func (h *Handler) ListProcedures(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListProcedures(r.Context())
	if err != nil {
		h.respondError(w, "GET /procedures", 0, err, msgProcedureNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetProcedure GET /api/v1/procedures/{id}
func (h *Handler) GetProcedure(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "GET /procedures/{id}")
	if !ok {
		return
	}
	result, err := h.service.GetProcedure(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /procedures/{id}", id, err, msgProcedureNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateProcedure POST /api/v1/procedures
func (h *Handler) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	var req models.ProcedureRequest
	if !h.decode(w, r, "POST /procedures", &req) {
		return
	}
	result, err := h.service.CreateProcedure(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /procedures", 0, err, msgProcedureNotFound)
		return
	}
	h.logger.Info("POST /procedures - Procedure created: procedure_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateProcedure PUT /api/v1/procedures/{id}
func (h *Handler) UpdateProcedure(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /procedures/{id}")
	if !ok {
		return
	}
	var req models.ProcedureRequest
	if !h.decode(w, r, "PUT /procedures/{id}", &req) {
		return
	}
	result, err := h.service.UpdateProcedure(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /procedures/{id}", id, err, msgProcedureNotFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteProcedure DELETE /api/v1/procedures/{id}
func (h *Handler) DeleteProcedure(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /procedures/{id}")
	if !ok {
		return
	}
	if err := h.service.DeleteProcedure(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /procedures/{id}", id, err, msgProcedureNotFound)
		return
	}
	handlers.RespondNoContent(w)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error, msgNotFound string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		h.logger.Warn("%s - Not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, catalog.ErrInUse):
		h.logger.Warn("%s - Entity in use: id=%d", route, id)
		handlers.RespondConflict(w, msgInUse)

	default:
		h.logger.Error("%s - Failed: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
