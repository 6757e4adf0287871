package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
)

type AppointmentService interface {
	Create(ctx context.Context, req *models.AppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
