package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/spa-booking-service/internal/domain"
	catalogRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/catalog"
)

// Результаты создания бронирования для метрик
const (
	resultCreated  = "created"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	clientRepo    ClientRepository
	services      ServiceProvider
	professionals ProfessionalProvider
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	services ServiceProvider,
	professionals ProfessionalProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		clientRepo:    clientRepo,
		services:      services,
		professionals: professionals,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Клиент и бронирование с позициями сохраняются в одной транзакции.
// Уведомления при создании не отправляются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)

	switch {
	case err == nil:
		uc.metrics.IncBookingCreated(resultCreated)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncBookingCreated(resultFailed)
	default:
		uc.metrics.IncBookingCreated(resultRejected)
	}

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	in, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: date=%s, time=%s, services=%d",
		in.date.Format(domain.DateFormat), in.time, len(in.items))

	// 2. Проверяем явно указанного профессионала
	if in.professionalID != nil {
		if _, err := uc.professionals.GetProfessional(ctx, *in.professionalID); err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("CreateBooking: professional id=%s not found", in.professionalID)
				return nil, ErrProfessionalNotFound
			}
			uc.logger.Error("CreateBooking: failed to get professional id=%s: %v", in.professionalID, err)
			return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}
	}

	// 3. Загружаем услуги, все отсутствующие возвращаются одной ошибкой
	services, lines, err := uc.resolveLines(ctx, in.items)
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: %v", err)
		} else {
			uc.logger.Warn("CreateBooking: %v", err)
		}
		return nil, err
	}

	// 4. Выводим профессионала из услуг, если он не указан явно
	professionalID := in.professionalID
	if professionalID == nil {
		professionalID, err = inferProfessional(services)
		if err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
	}

	booking := &domain.Booking{
		ProfessionalID: professionalID,
		Date:           in.date,
		Time:           in.time,
		Status:         domain.StatusScheduled,
		Items:          make([]domain.BookingItem, 0, len(in.items)),
	}
	for _, item := range in.items {
		booking.Items = append(booking.Items, domain.BookingItem{
			ServiceID:   item.serviceID,
			VariationID: item.variationID,
			Quantity:    item.quantity,
		})
	}

	// 5-6. Клиент и бронирование в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5. Создаём или обновляем клиента по телефону
		client, err := uc.clientRepo.Upsert(txCtx, &domain.Client{
			Name:       in.client.Name,
			Phone:      in.client.Phone,
			Email:      clientEmail(in.client),
			Notes:      in.client.Notes,
			RoomNumber: in.client.RoomNumber,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to upsert client: %v", err)
			return fmt.Errorf("%w: failed to upsert client: %v", ErrInternal, err)
		}

		// 6. Сохраняем бронирование и позиции
		booking.ClientID = client.ID
		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	totalPrice, totalDuration := domain.Totals(lines)

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s",
		booking.ID, domain.FormatPrice(totalPrice))

	return &Response{
		BookingID:            booking.ID,
		ClientID:             booking.ClientID,
		ProfessionalID:       booking.ProfessionalID,
		Date:                 booking.Date,
		Time:                 booking.Time,
		Status:               string(booking.Status),
		TotalPrice:           totalPrice,
		TotalDurationMinutes: totalDuration,
		CreatedAt:            booking.CreatedAt,
	}, nil
}
