package domain

// Окно записи по умолчанию
const (
	DefaultFirstSlotHour  = 10
	DefaultLastSlotHour   = 18
	DefaultDateWindowDays = 5
	SlotDurationMinutes   = 60
)

// Business validation constants
const (
	MaxNameLength    = 255
	MaxPhoneLength   = 20
	MaxAddressLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
