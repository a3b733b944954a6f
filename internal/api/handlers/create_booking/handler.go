package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
	createBooking "github.com/m04kA/spa-booking-service/internal/usecase/create_booking"
)

// Коды ошибок создания бронирования
const (
	codeProfessionalNotFound  = "PROFESSIONAL_NOT_FOUND"
	codeServicesNotFound      = "SERVICES_NOT_FOUND"
	codeVariationNotFound     = "VARIATION_NOT_FOUND"
	codeDifferentProfessional = "SERVICES_WITH_DIFFERENT_PROFESSIONALS"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidProfessionalID  = "некорректный ID профессионала"
	msgInvalidInput           = "некорректные данные бронирования"
	msgProfessionalNotFound   = "профессионал не найден"
	msgServicesNotFound       = "услуги не найдены"
	msgVariationNotFound      = "вариация цены не найдена"
	msgDifferentProfessionals = "услуги закреплены за разными профессионалами"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid professional id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var missing *createBooking.ServicesNotFoundError

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, handlers.CodeValidationError, msgInvalidInput,
				map[string]interface{}{"reason": err.Error()})

		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			h.logger.Warn("POST /bookings - Professional not found: %v", req.ProfessionalID)
			handlers.RespondError(w, http.StatusNotFound, codeProfessionalNotFound, msgProfessionalNotFound)

		case errors.As(err, &missing):
			h.logger.Warn("POST /bookings - Services not found: ids=%v", missing.IDs)
			handlers.RespondErrorWithDetails(w, http.StatusNotFound, codeServicesNotFound, msgServicesNotFound,
				map[string]interface{}{"missingServiceIds": missing.IDs})

		case errors.Is(err, createBooking.ErrServicesNotFound):
			handlers.RespondError(w, http.StatusNotFound, codeServicesNotFound, msgServicesNotFound)

		case errors.Is(err, createBooking.ErrVariationNotFound):
			h.logger.Warn("POST /bookings - Variation not found: %v", err)
			handlers.RespondError(w, http.StatusNotFound, codeVariationNotFound, msgVariationNotFound)

		case errors.Is(err, createBooking.ErrConflictingProfessionals):
			h.logger.Warn("POST /bookings - Services with different professionals")
			handlers.RespondConflict(w, codeDifferentProfessional, msgDifferentProfessionals)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, client_id=%s",
		result.BookingID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
