package domain

import "time"

// BookingRequestStatus статус заявки на консультацию
type BookingRequestStatus string

const (
	BookingRequestNew       BookingRequestStatus = "new"
	BookingRequestProcessed BookingRequestStatus = "processed"
)

// BookingRequest заявка на обратный звонок вместо выбора слота
type BookingRequest struct {
	ID          int64
	ClientName  string
	ClientPhone string
	SalonID     *int64
	Status      BookingRequestStatus
	CreatedAt   time.Time
}
