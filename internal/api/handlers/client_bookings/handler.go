package client_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	"github.com/m04kA/spa-booking-service/internal/service/bookings"
)

const (
	msgInvalidPhone = "некорректный номер телефона"
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

// Handle GET /api/v1/clients/{phone}/bookings
// Для неизвестного телефона отвечает пустым списком, а не 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	result, err := h.service.GetClientBookings(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clients/{phone}/bookings - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		default:
			h.logger.Error("GET /clients/{phone}/bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{phone}/bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
