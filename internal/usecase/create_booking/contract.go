package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// ServiceProvider источник услуг каталога (репозиторий или кэш)
type ServiceProvider interface {
	GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error)
}

// ProfessionalProvider источник данных о профессионалах
type ProfessionalProvider interface {
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бизнес-метрик
type Metrics interface {
	IncBookingCreated(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
