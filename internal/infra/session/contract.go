package session

import "time"

// DefaultTTL время жизни состояния диалога без активности
const DefaultTTL = 24 * time.Hour

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системные часы
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
