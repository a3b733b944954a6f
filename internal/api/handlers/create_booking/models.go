package create_booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
	createBooking "github.com/m04kA/spa-booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date           string           `json:"date"` // "2025-10-15"
	Time           string           `json:"time"` // "10:00" или "10:00:00"
	ProfessionalID *string          `json:"professionalId,omitempty"`
	Client         ClientRequest    `json:"client"`
	Services       []ServiceRequest `json:"services"`
}

// ClientRequest контактные данные клиента
type ClientRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
}

// ServiceRequest позиция бронирования
type ServiceRequest struct {
	ServiceID   int64  `json:"serviceId"`
	VariationID *int64 `json:"variationId,omitempty"`
	Quantity    *int   `json:"quantity,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID            string  `json:"bookingId"`
	ClientID             string  `json:"clientId"`
	ProfessionalID       *string `json:"professionalId,omitempty"`
	Date                 string  `json:"date"`
	Time                 string  `json:"time"`
	Status               string  `json:"status"`
	TotalPrice           string  `json:"totalPrice"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	CreatedAt            string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата и время проверяются в use case, здесь разбирается только ID профессионала
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		Date: r.Date,
		Time: r.Time,
		Client: createBooking.ClientInput{
			Name:       r.Client.Name,
			Phone:      r.Client.Phone,
			Email:      r.Client.Email,
			Notes:      r.Client.Notes,
			RoomNumber: r.Client.RoomNumber,
		},
		Services: make([]createBooking.ServiceInput, 0, len(r.Services)),
	}

	if r.ProfessionalID != nil && strings.TrimSpace(*r.ProfessionalID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*r.ProfessionalID))
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &id
	}

	for _, s := range r.Services {
		req.Services = append(req.Services, createBooking.ServiceInput{
			ServiceID:   s.ServiceID,
			VariationID: s.VariationID,
			Quantity:    s.Quantity,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		BookingID:            resp.BookingID.String(),
		ClientID:             resp.ClientID.String(),
		Date:                 resp.Date.Format(domain.DateFormat),
		Time:                 resp.Time.String(),
		Status:               resp.Status,
		TotalPrice:           domain.FormatPrice(resp.TotalPrice),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.ProfessionalID != nil {
		id := resp.ProfessionalID.String()
		out.ProfessionalID = &id
	}
	return out
}
