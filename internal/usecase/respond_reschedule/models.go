package respond_reschedule

import (
	"time"

	"github.com/google/uuid"
)

// Options параметры поведения use case, задаются из конфигурации
type Options struct {
	// NotifyClient отправляет клиенту сообщение о принятом решении
	NotifyClient bool
	// BusinessName подпись в сообщениях клиенту
	BusinessName string
}

// Request ответ персонала на заявку о переносе
type Request struct {
	RequestID       uuid.UUID
	Decision        string // accept или reject
	ResponseMessage *string
	RespondedBy     *string
	// ActorID идентификатор из заголовка аутентификации, используется если RespondedBy не задан
	ActorID string
}

// Response итог ответа на заявку
type Response struct {
	RequestID       uuid.UUID  `json:"requestId"`
	BookingID       uuid.UUID  `json:"bookingId"`
	Status          string     `json:"status"`
	RequestedDate   string     `json:"requestedDate"`
	RequestedTime   string     `json:"requestedTime"`
	ResponseMessage *string    `json:"responseMessage,omitempty"`
	RespondedBy     *string    `json:"respondedBy,omitempty"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
}
