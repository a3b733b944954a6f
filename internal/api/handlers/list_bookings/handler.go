package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	"github.com/m04kA/spa-booking-service/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: professional_id, service_id, client, time, time_from, time_to, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq := ToServiceRequest(r.URL.Query())

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, handlers.CodeValidationError, msgInvalidParams,
				map[string]interface{}{"reason": err.Error()})

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
