package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	updateStatus "github.com/m04kA/spa-booking-service/internal/usecase/update_booking_status"
)

// CodeBookingFinalized код ошибки смены статуса завершённого бронирования
const CodeBookingFinalized = "BOOKING_ALREADY_FINALIZED"

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус, ожидается scheduled, completed или cancelled"
	msgNotFound           = "бронирование не найдено"
	msgFinalized          = "бронирование уже завершено или отменено"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		BookingID:        bookingID,
		Status:           req.Status,
		SendNotification: req.SendNotification,
	})
	if err != nil {
		RespondUseCaseError(w, h.logger, "PUT /bookings/{id}/status", err)
		return
	}

	h.logger.Info("PUT /bookings/{id}/status - Status updated: booking_id=%s, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// RespondUseCaseError переводит ошибку смены статуса в HTTP ответ
func RespondUseCaseError(w http.ResponseWriter, logger Logger, route string, err error) {
	switch {
	case errors.Is(err, updateStatus.ErrInvalidInput):
		logger.Warn("%s - Invalid status: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, updateStatus.ErrBookingNotFound):
		logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, updateStatus.ErrBookingFinalized):
		logger.Warn("%s - Booking already finalized", route)
		handlers.RespondConflict(w, CodeBookingFinalized, msgFinalized)

	default:
		logger.Error("%s - Failed to update status: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
