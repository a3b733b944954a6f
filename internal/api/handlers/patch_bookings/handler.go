package patch_bookings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	requestRescheduleHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/request_reschedule"
	respondRescheduleHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/respond_reschedule"
	"github.com/m04kA/spa-booking-service/internal/api/middleware"
)

const route = "PATCH /bookings"

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "некорректное действие, ожидается reschedule или respond-reschedule"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestID   = "некорректный ID заявки"
	msgStaffOnly          = "ответить на заявку может только сотрудник, требуется заголовок X-Actor-ID"
)

type Handler struct {
	requester RescheduleRequester
	responder RescheduleResponder
	logger    Logger
}

func NewHandler(requester RescheduleRequester, responder RescheduleResponder, logger Logger) *Handler {
	return &Handler{
		requester: requester,
		responder: responder,
		logger:    logger,
	}
}

// Handle PATCH /api/v1/bookings
// Тело содержит action, остальные поля зависят от действия
// reschedule доступен клиенту, respond-reschedule требует X-Actor-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := handlers.DecodeJSON(r, &raw); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var envelope actionEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch strings.ToLower(strings.TrimSpace(envelope.Action)) {
	case ActionReschedule:
		var action RescheduleAction
		if err := json.Unmarshal(raw, &action); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		bookingID, err := uuid.Parse(strings.TrimSpace(action.BookingID))
		if err != nil {
			h.logger.Warn("%s - Invalid booking ID: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		h.requester.Execute(w, r, route, bookingID, requestRescheduleHandler.RescheduleRequest{
			Date: action.Date,
			Time: action.Time,
		})

	case ActionRespondReschedule:
		// Решение по заявке принимает только сотрудник
		if _, ok := middleware.GetActorID(r.Context()); !ok {
			h.logger.Warn("%s - respond-reschedule without actor ID", route)
			handlers.RespondUnauthorized(w, msgStaffOnly)
			return
		}

		var action RespondRescheduleAction
		if err := json.Unmarshal(raw, &action); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		requestID, err := uuid.Parse(strings.TrimSpace(action.RequestID))
		if err != nil {
			h.logger.Warn("%s - Invalid request ID: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)
			return
		}
		h.responder.Execute(w, r, route, requestID, respondRescheduleHandler.RespondRequest{
			Decision:        action.Decision,
			ResponseMessage: action.ResponseMessage,
			RespondedBy:     action.RespondedBy,
		})

	default:
		h.logger.Warn("%s - Unknown action: %q", route, envelope.Action)
		handlers.RespondBadRequest(w, msgInvalidAction)
	}
}
