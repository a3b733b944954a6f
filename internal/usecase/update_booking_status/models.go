package update_booking_status

import (
	"github.com/google/uuid"
)

// Options параметры поведения use case, задаются из конфигурации
type Options struct {
	// RejectFromFinal запрещает переходы из completed/cancelled
	RejectFromFinal bool
	// BusinessName подпись в сообщениях клиенту
	BusinessName string
}

// Request запрос на смену статуса бронирования
type Request struct {
	BookingID        uuid.UUID
	Status           string
	SendNotification bool
}

// Response результат смены статуса
type Response struct {
	BookingID     uuid.UUID              `json:"bookingId"`
	Status        string                 `json:"status"`
	Notifications []NotificationResponse `json:"notifications,omitempty"`
}

// NotificationResponse итог отправки одного уведомления
type NotificationResponse struct {
	Recipient string `json:"recipient"` // client или professional
	Channel   string `json:"channel"`
	Success   bool   `json:"success"`
}

const (
	recipientClient       = "client"
	recipientProfessional = "professional"
)
