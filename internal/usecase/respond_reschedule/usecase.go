package respond_reschedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/spa-booking-service/internal/domain"
	rescheduleRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/reschedule"
	"github.com/m04kA/spa-booking-service/internal/notification"
)

// Результаты ответа на заявку для метрик
const (
	resultAnswered = "answered"
	resultAlready  = "already_answered"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultFailed   = "failed"
)

// UseCase use case для ответа на заявку о переносе
type UseCase struct {
	rescheduleRepo RescheduleRepository
	bookingRepo    BookingRepository
	viewer         BookingViewer
	notifier       Notifier
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
	opts           Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rescheduleRepo RescheduleRepository,
	bookingRepo BookingRepository,
	viewer BookingViewer,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		rescheduleRepo: rescheduleRepo,
		bookingRepo:    bookingRepo,
		viewer:         viewer,
		notifier:       notifier,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
		opts:           opts,
	}
}

// Execute фиксирует решение по заявке
// При принятии дата и время бронирования переносятся в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)

	switch {
	case err == nil:
		uc.metrics.IncRescheduleResponse(req.Decision, resultAnswered)
	case errors.Is(err, ErrAlreadyAnswered):
		uc.metrics.IncRescheduleResponse(req.Decision, resultAlready)
	case errors.Is(err, ErrRequestNotFound):
		uc.metrics.IncRescheduleResponse(req.Decision, resultNotFound)
	case errors.Is(err, ErrInvalidInput):
		uc.metrics.IncRescheduleResponse(req.Decision, resultInvalid)
	default:
		uc.metrics.IncRescheduleResponse(req.Decision, resultFailed)
	}

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация решения
	decision := domain.RescheduleDecision(strings.ToLower(strings.TrimSpace(req.Decision)))
	if !decision.IsValid() {
		uc.logger.Warn("Execute: invalid decision=%q for request=%s", req.Decision, req.RequestID)
		return nil, fmt.Errorf("%w: decision must be accept or reject", ErrInvalidInput)
	}

	respondedBy := req.RespondedBy
	if (respondedBy == nil || *respondedBy == "") && req.ActorID != "" {
		actor := req.ActorID
		respondedBy = &actor
	}

	// 2. Ответ на заявку и перенос бронирования в одной транзакции
	var answered *domain.RescheduleRequest
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		answered, err = uc.rescheduleRepo.Respond(ctx, req.RequestID, decision.Status(), req.ResponseMessage, respondedBy)
		if err != nil {
			return err
		}

		if decision == domain.DecisionAccept {
			if err := uc.bookingRepo.UpdateSchedule(ctx, answered.BookingID, answered.RequestedDate, answered.RequestedTime); err != nil {
				return fmt.Errorf("update booking schedule: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleRepo.ErrRequestNotFound):
			uc.logger.Warn("Execute: reschedule request=%s not found", req.RequestID)
			return nil, ErrRequestNotFound
		case errors.Is(err, rescheduleRepo.ErrAlreadyAnswered):
			uc.logger.Warn("Execute: reschedule request=%s already answered", req.RequestID)
			return nil, ErrAlreadyAnswered
		default:
			uc.logger.Error("Execute: failed to respond to reschedule request=%s: %v", req.RequestID, err)
			return nil, fmt.Errorf("%w: Execute - respond: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("Execute: reschedule request=%s %s for booking=%s", answered.ID, answered.Status, answered.BookingID)

	// 3. Уведомление клиента о решении, ошибки не влияют на результат
	if uc.opts.NotifyClient {
		uc.notifyDecision(ctx, answered)
	}

	return &Response{
		RequestID:       answered.ID,
		BookingID:       answered.BookingID,
		Status:          string(answered.Status),
		RequestedDate:   answered.RequestedDate.Format(domain.DateFormat),
		RequestedTime:   answered.RequestedTime.String(),
		ResponseMessage: answered.ResponseMessage,
		RespondedBy:     answered.RespondedBy,
		RespondedAt:     answered.RespondedAt,
	}, nil
}

// notifyDecision сообщает клиенту о решении в WhatsApp и, если есть настоящий email, письмом
func (uc *UseCase) notifyDecision(ctx context.Context, answered *domain.RescheduleRequest) {
	view, err := uc.viewer.GetView(ctx, answered.BookingID)
	if err != nil {
		uc.logger.Error("notifyDecision: failed to load booking=%s: %v", answered.BookingID, err)
		return
	}

	msg := notification.RescheduleDecision(view, answered, uc.opts.BusinessName)

	if view.Client.Phone != "" {
		uc.notifier.Send(ctx, notification.Destination{
			Channel: notification.ChannelWhatsApp,
			Address: view.Client.Phone,
			Name:    view.Client.Name,
		}, msg)
	}

	if view.Client.HasRealEmail() && uc.notifier.HasChannel(notification.ChannelEmail) {
		uc.notifier.Send(ctx, notification.Destination{
			Channel: notification.ChannelEmail,
			Address: view.Client.Email,
			Name:    view.Client.Name,
		}, msg)
	}
}
