package request_reschedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/spa-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/reschedule"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

// Результаты заявки на перенос для метрик
const (
	resultCreated  = "created"
	resultPending  = "already_pending"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// UseCase use case для создания заявки на перенос
type UseCase struct {
	bookingRepo    BookingRepository
	rescheduleRepo RescheduleRepository
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rescheduleRepo RescheduleRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		rescheduleRepo: rescheduleRepo,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute создаёт ожидающую заявку на перенос с исходными датой и временем бронирования
// На бронирование допускается не более одной ожидающей заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)

	switch {
	case err == nil:
		uc.metrics.IncRescheduleRequest(resultCreated)
	case errors.Is(err, ErrPendingExists):
		uc.metrics.IncRescheduleRequest(resultPending)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncRescheduleRequest(resultFailed)
	default:
		uc.metrics.IncRescheduleRequest(resultRejected)
	}

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация даты и времени
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	at, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM or HH:MM:SS", ErrInvalidInput)
	}

	// 2. Загрузка бронирования для снимка исходных даты и времени
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("Execute: booking=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("Execute: failed to load booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - get booking: %v", ErrInternal, err)
	}

	// 3. Проверка ожидающей заявки
	// Одновременные запросы дополнительно отсекает частичный уникальный индекс
	pending, err := uc.rescheduleRepo.HasPending(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("Execute: failed to check pending requests for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Execute - check pending: %v", ErrInternal, err)
	}
	if pending {
		uc.logger.Warn("Execute: booking=%s already has a pending reschedule request", booking.ID)
		return nil, ErrPendingExists
	}

	// 4. Создание заявки
	created, err := uc.rescheduleRepo.Create(ctx, &domain.RescheduleRequest{
		BookingID:     booking.ID,
		RequestedDate: date,
		RequestedTime: at,
		OriginalDate:  booking.Date,
		OriginalTime:  booking.Time,
		RequestedBy:   domain.RequestedByClient,
	})
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrPendingExists) {
			uc.logger.Warn("Execute: concurrent pending reschedule request for booking=%s", booking.ID)
			return nil, ErrPendingExists
		}
		uc.logger.Error("Execute: failed to create reschedule request for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Execute - create request: %v", ErrInternal, err)
	}

	uc.logger.Info("Execute: reschedule request=%s created for booking=%s (%s %s)",
		created.ID, booking.ID, created.RequestedDate.Format(domain.DateFormat), created.RequestedTime)

	return &Response{
		RequestID:     created.ID,
		BookingID:     booking.ID,
		Status:        string(created.Status),
		RequestedDate: created.RequestedDate.Format(domain.DateFormat),
		RequestedTime: created.RequestedTime.String(),
		CreatedAt:     created.CreatedAt,
	}, nil
}
