package domain

// Procedure процедура с ценой в рублях
type Procedure struct {
	ID    int64
	Name  string
	Price float64
}
