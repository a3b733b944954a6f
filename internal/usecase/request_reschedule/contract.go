package request_reschedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	HasPending(ctx context.Context, bookingID uuid.UUID) (bool, error)
	Create(ctx context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error)
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	IncRescheduleRequest(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
