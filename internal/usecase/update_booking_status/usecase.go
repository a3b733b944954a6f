package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/spa-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/spa-booking-service/internal/notification"
)

// Результаты смены статуса для метрик
const (
	resultUpdated   = "updated"
	resultNotFound  = "not_found"
	resultFinalized = "finalized"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	viewer      BookingViewer
	notifier    Notifier
	metrics     Metrics
	logger      Logger
	opts        Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	viewer BookingViewer,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		viewer:      viewer,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
		opts:        opts,
	}
}

// Execute меняет статус бронирования
// При переходе в completed и SendNotification=true уведомляет клиента и профессионала.
// Ошибки доставки не влияют на результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация статуса
	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		uc.logger.Warn("Execute: invalid status=%q for booking=%s", req.Status, req.BookingID)
		uc.metrics.IncStatusTransition(req.Status, resultInvalid)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	// 2. Обновление статуса, защита финальных статусов выполняется в WHERE запроса
	if err := uc.bookingRepo.UpdateStatus(ctx, req.BookingID, status, uc.opts.RejectFromFinal); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("Execute: booking=%s not found", req.BookingID)
			uc.metrics.IncStatusTransition(string(status), resultNotFound)
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrBookingFinalized):
			uc.logger.Warn("Execute: booking=%s already finalized, transition to %s rejected", req.BookingID, status)
			uc.metrics.IncStatusTransition(string(status), resultFinalized)
			return nil, ErrBookingFinalized
		case errors.Is(err, bookingRepo.ErrInvalidStatus):
			uc.metrics.IncStatusTransition(string(status), resultInvalid)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("Execute: failed to update status of booking=%s: %v", req.BookingID, err)
			uc.metrics.IncStatusTransition(string(status), resultFailed)
			return nil, fmt.Errorf("%w: Execute - update status: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncStatusTransition(string(status), resultUpdated)
	uc.logger.Info("Execute: booking=%s moved to status=%s", req.BookingID, status)

	resp := &Response{
		BookingID: req.BookingID,
		Status:    string(status),
	}

	// 3. Уведомления только для завершённого визита и только по явному запросу
	if status == domain.StatusCompleted && req.SendNotification {
		resp.Notifications = uc.notifyCompletion(ctx, req)
	}

	return resp, nil
}

// notifyCompletion отправляет клиенту и профессионалу сообщения о завершении визита
// Каждое сообщение отправляется независимо
func (uc *UseCase) notifyCompletion(ctx context.Context, req *Request) []NotificationResponse {
	view, err := uc.viewer.GetView(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("notifyCompletion: failed to load booking=%s: %v", req.BookingID, err)
		return nil
	}

	var results []NotificationResponse

	if view.Client.Phone != "" {
		res := uc.notifier.Send(ctx, notification.Destination{
			Channel: notification.ChannelWhatsApp,
			Address: view.Client.Phone,
			Name:    view.Client.Name,
		}, notification.CompletionForClient(view, uc.opts.BusinessName))
		results = append(results, toResponse(recipientClient, res))
	} else {
		uc.logger.Warn("notifyCompletion: client of booking=%s has no phone, skipped", req.BookingID)
	}

	if view.Professional != nil && view.Professional.Phone != nil && *view.Professional.Phone != "" {
		res := uc.notifier.Send(ctx, notification.Destination{
			Channel: notification.ChannelWhatsApp,
			Address: *view.Professional.Phone,
			Name:    view.Professional.Name,
		}, notification.CompletionForProfessional(view))
		results = append(results, toResponse(recipientProfessional, res))
	} else {
		uc.logger.Info("notifyCompletion: booking=%s has no professional phone, skipped", req.BookingID)
	}

	return results
}

func toResponse(recipient string, res notification.Result) NotificationResponse {
	return NotificationResponse{
		Recipient: recipient,
		Channel:   string(res.Channel),
		Success:   res.Success,
	}
}
