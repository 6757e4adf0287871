package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/service/catalog"
	"github.com/m04kA/SMC-BeautyBot/internal/service/catalog/models"
	"github.com/m04kA/SMC-BeautyBot/pkg/logger"
)

// stubService переопределяет только нужные тестам методы
type stubService struct {
	CatalogService
	salons  map[int64]models.SalonResponse
	deleted []int64
	inUse   bool
}

func (s *stubService) ListSalons(context.Context) ([]models.SalonResponse, error) {
	result := make([]models.SalonResponse, 0, len(s.salons))
	for id := int64(1); id <= int64(len(s.salons)); id++ {
		result = append(result, s.salons[id])
	}
	return result, nil
}

func (s *stubService) GetSalon(_ context.Context, id int64) (*models.SalonResponse, error) {
	salon, ok := s.salons[id]
	if !ok {
		return nil, fmt.Errorf("%w: GetSalon - id=%d", catalog.ErrNotFound, id)
	}
	return &salon, nil
}

func (s *stubService) CreateSalon(_ context.Context, req *models.SalonRequest) (*models.SalonResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", catalog.ErrInvalidInput)
	}
	id := int64(len(s.salons) + 1)
	s.salons[id] = models.SalonResponse{ID: id, Name: req.Name, Address: req.Address}
	resp := s.salons[id]
	return &resp, nil
}

func (s *stubService) DeleteSalon(_ context.Context, id int64) error {
	if s.inUse {
		return fmt.Errorf("%w: DeleteSalon - id=%d", catalog.ErrInUse, id)
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubService) ListProcedures(context.Context) ([]models.ProcedureResponse, error) {
	return nil, fmt.Errorf("%w: boom", catalog.ErrInternal)
}

func newRouter(svc CatalogService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/salons", h.ListSalons).Methods(http.MethodGet)
	r.HandleFunc("/salons", h.CreateSalon).Methods(http.MethodPost)
	r.HandleFunc("/salons/{id}", h.GetSalon).Methods(http.MethodGet)
	r.HandleFunc("/salons/{id}", h.DeleteSalon).Methods(http.MethodDelete)
	r.HandleFunc("/procedures", h.ListProcedures).Methods(http.MethodGet)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newStub() *stubService {
	return &stubService{salons: map[int64]models.SalonResponse{
		1: {ID: 1, Name: "Лаванда", Address: "ул. Ленина, 1"},
	}}
}

func TestSalons_CRUD(t *testing.T) {
	svc := newStub()
	r := newRouter(svc)

	rec := do(r, http.MethodPost, "/salons", `{"name":"Роза","address":"пр. Мира, 5"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)

	rec = do(r, http.MethodGet, "/salons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Лаванда")
	assert.Contains(t, rec.Body.String(), "Роза")

	rec = do(r, http.MethodGet, "/salons/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"address":"ул. Ленина, 1"`)

	rec = do(r, http.MethodDelete, "/salons/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{2}, svc.deleted)
}

func TestSalons_Errors(t *testing.T) {
	svc := newStub()
	r := newRouter(svc)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "not found", method: http.MethodGet, target: "/salons/99", status: http.StatusNotFound},
		{name: "bad id", method: http.MethodGet, target: "/salons/abc", status: http.StatusBadRequest},
		{name: "bad body", method: http.MethodPost, target: "/salons", body: `{"name":`, status: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, target: "/salons", body: `{"title":"x"}`, status: http.StatusBadRequest},
		{name: "invalid data", method: http.MethodPost, target: "/salons", body: `{"name":"  "}`, status: http.StatusBadRequest},
		{name: "internal", method: http.MethodGet, target: "/procedures", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestDeleteSalon_InUse(t *testing.T) {
	svc := newStub()
	svc.inUse = true

	rec := do(newRouter(svc), http.MethodDelete, "/salons/1", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, svc.deleted)
}
