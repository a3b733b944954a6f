package update_booking_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/internal/notification"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, guardFinal bool) error
}

// BookingViewer загружает бронирование с клиентом, профессионалом и позициями
type BookingViewer interface {
	GetView(ctx context.Context, id uuid.UUID) (*domain.BookingView, error)
}

// Notifier отправляет уведомление, ошибка доставки возвращается в Result
type Notifier interface {
	Send(ctx context.Context, dest notification.Destination, msg notification.Message) notification.Result
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	IncStatusTransition(status, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
