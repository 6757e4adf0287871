package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// generateHourlySlots все целые часы от firstHour до lastHour включительно
func generateHourlySlots(firstHour, lastHour int) []types.TimeString {
	slots := make([]types.TimeString, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		slots = append(slots, types.MustHour(h))
	}
	return slots
}

// buildAvailability слот свободен, если его нет среди занятых
// Занятые времена вне окна игнорируются
func buildAvailability(slots []types.TimeString, busy []types.TimeString) domain.Availability {
	occupied := make(map[types.TimeString]struct{}, len(busy))
	for _, t := range busy {
		occupied[t] = struct{}{}
	}

	result := make(domain.Availability, len(slots))
	for _, slot := range slots {
		_, taken := occupied[slot]
		result[slot] = !taken
	}
	return result
}

// dateOnly отбрасывает время суток
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
