package cancel_booking

import (
	"net/http"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	statusHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/update_booking_status"
	"github.com/m04kA/spa-booking-service/internal/domain"
	updateStatus "github.com/m04kA/spa-booking-service/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Отмена клиентом: статус cancelled, без уведомлений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		BookingID:        bookingID,
		Status:           string(domain.StatusCancelled),
		SendNotification: false,
	})
	if err != nil {
		statusHandler.RespondUseCaseError(w, h.logger, "PATCH /bookings/{id}/cancel", err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
