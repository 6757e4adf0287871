package domain

// Specialist мастер. К салону не привязан
type Specialist struct {
	ID             int64
	Name           string
	Specialization string
	Phone          *string
	Email          *string
}
