package list_appointments

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
)

// ToServiceRequest формирует фильтр из query параметров salonId, specialistId, date
func ToServiceRequest(r *http.Request) (*models.ListAppointmentsRequest, error) {
	salonID, err := handlers.QueryID(r, "salonId")
	if err != nil {
		return nil, err
	}

	specialistID, err := handlers.QueryID(r, "specialistId")
	if err != nil {
		return nil, err
	}

	req := &models.ListAppointmentsRequest{
		SalonID:      salonID,
		SpecialistID: specialistID,
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
