package list_bookings

import (
	"net/url"

	"github.com/m04kA/spa-booking-service/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Разбор и проверка значений выполняются в сервисе
func ToServiceRequest(query url.Values) *models.ListBookingsRequest {
	return &models.ListBookingsRequest{
		ProfessionalID: query.Get("professional_id"),
		ServiceID:      query.Get("service_id"),
		Client:         query.Get("client"),
		Time:           query.Get("time"),
		TimeFrom:       query.Get("time_from"),
		TimeTo:         query.Get("time_to"),
		From:           query.Get("from"),
		To:             query.Get("to"),
	}
}
