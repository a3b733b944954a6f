package respond_reschedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	"github.com/m04kA/spa-booking-service/internal/api/middleware"
	respondReschedule "github.com/m04kA/spa-booking-service/internal/usecase/respond_reschedule"
)

// CodeAlreadyAnswered код ошибки повторного ответа на заявку
const CodeAlreadyAnswered = "RESCHEDULE_ALREADY_ANSWERED"

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDecision    = "решение должно быть accept или reject"
	msgNotFound           = "заявка на перенос не найдена"
	msgAlreadyAnswered    = "на заявку уже ответили"
)

type Handler struct {
	useCase RespondRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RespondRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedule-requests/{requestId}/response
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathUUID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /reschedule-requests/{id}/response - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req RespondRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule-requests/{id}/response - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.Execute(w, r, "POST /reschedule-requests/{id}/response", requestID, req)
}

// Execute вызывает use case и пишет ответ, используется также PATCH /bookings
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request, route string, requestID uuid.UUID, req RespondRequest) {
	// Если respondedBy не передан, используем сотрудника из заголовка
	actorID, _ := middleware.GetActorID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &respondReschedule.Request{
		RequestID:       requestID,
		Decision:        req.Decision,
		ResponseMessage: req.ResponseMessage,
		RespondedBy:     req.RespondedBy,
		ActorID:         actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, respondReschedule.ErrInvalidInput):
			h.logger.Warn("%s - Invalid decision: %q", route, req.Decision)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		case errors.Is(err, respondReschedule.ErrRequestNotFound):
			h.logger.Warn("%s - Reschedule request not found: request_id=%s", route, requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, respondReschedule.ErrAlreadyAnswered):
			h.logger.Warn("%s - Reschedule request already answered: request_id=%s", route, requestID)
			handlers.RespondConflict(w, CodeAlreadyAnswered, msgAlreadyAnswered)

		default:
			h.logger.Error("%s - Failed to respond: request_id=%s, error=%v", route, requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Reschedule request answered: request_id=%s, status=%s", route, requestID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
