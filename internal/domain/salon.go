package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// Salon салон красоты
type Salon struct {
	ID          int64
	Name        string
	Address     string
	Phone       string
	Email       string
	OpeningTime types.TimeString // информационное поле, на слоты не влияет
	ClosingTime types.TimeString
	CreatedAt   time.Time
}
