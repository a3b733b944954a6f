package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date           string     // Дата в формате YYYY-MM-DD
	Time           string     // Время "HH:MM" или "HH:MM:SS"
	ProfessionalID *uuid.UUID // Профессионал (опционально, иначе выводится из услуг)
	Client         ClientInput
	Services       []ServiceInput
}

// ClientInput данные клиента
type ClientInput struct {
	Name       string
	Phone      string
	Email      *string
	Notes      *string
	RoomNumber *string
}

// ServiceInput позиция бронирования
type ServiceInput struct {
	ServiceID   int64
	VariationID *int64
	Quantity    *int // nil = 1
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID            uuid.UUID
	ClientID             uuid.UUID
	ProfessionalID       *uuid.UUID
	Date                 time.Time
	Time                 types.TimeString
	Status               string
	TotalPrice           float64
	TotalDurationMinutes int
	CreatedAt            time.Time
}

// validatedRequest запрос после валидации и нормализации
type validatedRequest struct {
	date           time.Time
	time           types.TimeString
	professionalID *uuid.UUID
	client         ClientInput
	items          []validatedItem
}

type validatedItem struct {
	serviceID   int64
	variationID *int64
	quantity    int
}
