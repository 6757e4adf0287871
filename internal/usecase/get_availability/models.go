package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

// Request запрос занятости салона или мастера на дату
type Request struct {
	Entity   domain.EntityType
	EntityID int64
	Date     time.Time // время суток игнорируется
}
