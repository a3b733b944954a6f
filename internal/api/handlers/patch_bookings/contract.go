package patch_bookings

import (
	"net/http"

	"github.com/google/uuid"

	requestRescheduleHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/request_reschedule"
	respondRescheduleHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/respond_reschedule"
)

type RescheduleRequester interface {
	Execute(w http.ResponseWriter, r *http.Request, route string, bookingID uuid.UUID, req requestRescheduleHandler.RescheduleRequest)
}

type RescheduleResponder interface {
	Execute(w http.ResponseWriter, r *http.Request, route string, requestID uuid.UUID, req respondRescheduleHandler.RespondRequest)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
