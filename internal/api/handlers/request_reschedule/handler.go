package request_reschedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	requestReschedule "github.com/m04kA/spa-booking-service/internal/usecase/request_reschedule"
)

// CodeAlreadyPending код ошибки повторной заявки на перенос
const CodeAlreadyPending = "RESCHEDULE_ALREADY_PENDING"

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyPending     = "для бронирования уже есть ожидающая заявка на перенос"
)

type Handler struct {
	useCase RequestRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RequestRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.Execute(w, r, "POST /bookings/{id}/reschedule-requests", bookingID, req)
}

// Execute вызывает use case и пишет ответ, используется также PATCH /bookings
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request, route string, bookingID uuid.UUID, req RescheduleRequest) {
	result, err := h.useCase.Execute(r.Context(), &requestReschedule.Request{
		BookingID: bookingID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestReschedule.ErrInvalidInput):
			h.logger.Warn("%s - Invalid date or time: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		case errors.Is(err, requestReschedule.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestReschedule.ErrPendingExists):
			h.logger.Warn("%s - Reschedule already pending: booking_id=%s", route, bookingID)
			handlers.RespondConflict(w, CodeAlreadyPending, msgAlreadyPending)

		default:
			h.logger.Error("%s - Failed to create reschedule request: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Reschedule request created: request_id=%s, booking_id=%s", route, result.RequestID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
