package get_availability

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	getAvailability "github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Entity   string `json:"entity"`
	EntityID int64  `json:"entityId"`
	Date     string `json:"date"`
	Slots    []Slot `json:"slots"`
}

// Slot часовой слот и его занятость
type Slot struct {
	Time string `json:"time"`
	Free bool   `json:"free"`
}

// FromUseCaseResponse слоты в порядке времени
func FromUseCaseResponse(req *getAvailability.Request, availability domain.Availability) *AvailabilityResponse {
	slots := make([]Slot, 0, len(availability))
	for slot := range availability {
		slots = append(slots, Slot{Time: slot.String(), Free: availability[slot]})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })

	return &AvailabilityResponse{
		Entity:   string(req.Entity),
		EntityID: req.EntityID,
		Date:     req.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(entity, idStr, dateStr string) (*getAvailability.Request, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", idStr, err)
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	return &getAvailability.Request{
		Entity:   domain.EntityType(entity),
		EntityID: id,
		Date:     date,
	}, nil
}
