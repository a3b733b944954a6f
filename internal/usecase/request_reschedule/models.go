package request_reschedule

import (
	"time"

	"github.com/google/uuid"
)

// Request запрос клиента на перенос бронирования
type Request struct {
	BookingID uuid.UUID
	Date      string // YYYY-MM-DD
	Time      string // HH:MM или HH:MM:SS
}

// Response созданная заявка на перенос
type Response struct {
	RequestID     uuid.UUID `json:"requestId"`
	BookingID     uuid.UUID `json:"bookingId"`
	Status        string    `json:"status"`
	RequestedDate string    `json:"requestedDate"`
	RequestedTime string    `json:"requestedTime"`
	CreatedAt     time.Time `json:"createdAt"`
}
