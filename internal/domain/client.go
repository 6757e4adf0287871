package domain

import "time"

// Client клиент салона, уникален по номеру телефона
type Client struct {
	ID            int64
	Name          string
	PhoneNumber   string
	Email         *string
	LoyaltyPoints int
	CreatedAt     time.Time
}
