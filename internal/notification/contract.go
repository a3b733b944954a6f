package notification

import (
	"context"

	"github.com/m04kA/spa-booking-service/internal/integrations/whatsapp"
)

// Sender отправитель одного канала
type Sender interface {
	Channel() Channel
	Send(ctx context.Context, dest Destination, msg Message) error
}

// WhatsAppGateway клиент шлюза WhatsApp
type WhatsAppGateway interface {
	SendMessage(ctx context.Context, phone, message string) (*whatsapp.SendMessageResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
