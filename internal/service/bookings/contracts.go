package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Client, error)
}

// ServiceProvider источник услуг каталога (репозиторий или кэш)
type ServiceProvider interface {
	GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error)
}

// ProfessionalProvider источник данных о профессионалах
type ProfessionalProvider interface {
	GetProfessionalsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Professional, error)
}

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	ListByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.RescheduleRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
