package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	getAvailability "github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BeautyBot/pkg/logger"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

type busyRepo struct {
	busy map[domain.EntityType][]types.TimeString
}

func (r busyRepo) BusyTimes(_ context.Context, entity domain.EntityType, _ int64, _ time.Time) ([]types.TimeString, error) {
	return r.busy[entity], nil
}

func newHandler() *Handler {
	repo := busyRepo{busy: map[domain.EntityType][]types.TimeString{
		domain.EntitySalon:  {"10:00", "14:00"},
		domain.EntityMaster: {"12:00"},
	}}
	uc := getAvailability.NewUseCase(repo, domain.DefaultFirstSlotHour, domain.DefaultLastSlotHour, nil, logger.NewNop())
	return NewHandler(uc, logger.NewNop())
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_SalonAvailability(t *testing.T) {
	rec := get(newHandler(), "/api/v1/availability?entity=salon&id=1&date=2025-01-15")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "salon", resp.Entity)
	assert.Equal(t, int64(1), resp.EntityID)
	assert.Equal(t, "2025-01-15", resp.Date)
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, Slot{Time: "10:00", Free: false}, resp.Slots[0])
	assert.Equal(t, Slot{Time: "11:00", Free: true}, resp.Slots[1])
	assert.Equal(t, Slot{Time: "14:00", Free: false}, resp.Slots[4])
	assert.Equal(t, Slot{Time: "18:00", Free: true}, resp.Slots[8])
}

func TestHandle_MasterAvailability(t *testing.T) {
	rec := get(newHandler(), "/api/v1/availability?entity=master&id=3&date=2025-01-15")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, Slot{Time: "12:00", Free: false}, resp.Slots[2])
	assert.True(t, resp.Slots[0].Free)
}

func TestHandle_BadRequest(t *testing.T) {
	for _, target := range []string{
		"/api/v1/availability?entity=salon&id=1",
		"/api/v1/availability?entity=salon&id=x&date=2025-01-15",
		"/api/v1/availability?entity=salon&id=1&date=2025-02-30",
		"/api/v1/availability?entity=room&id=1&date=2025-01-15",
		"/api/v1/availability?entity=salon&id=0&date=2025-01-15",
	} {
		t.Run(target, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, get(newHandler(), target).Code)
		})
	}
}
