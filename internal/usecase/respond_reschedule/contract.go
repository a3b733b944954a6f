package respond_reschedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/internal/notification"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	Respond(ctx context.Context, id uuid.UUID, status domain.RescheduleStatus, message *string, respondedBy *string) (*domain.RescheduleRequest, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	UpdateSchedule(ctx context.Context, id uuid.UUID, date time.Time, at types.TimeString) error
}

// BookingViewer загружает бронирование с клиентом для уведомления
type BookingViewer interface {
	GetView(ctx context.Context, id uuid.UUID) (*domain.BookingView, error)
}

// Notifier отправляет уведомление, ошибка доставки возвращается в Result
type Notifier interface {
	HasChannel(ch notification.Channel) bool
	Send(ctx context.Context, dest notification.Destination, msg notification.Message) notification.Result
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	IncRescheduleResponse(decision, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
