package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/spa-booking-service/internal/service/bookings"
	"github.com/m04kA/spa-booking-service/internal/service/bookings/models"
	"github.com/m04kA/spa-booking-service/pkg/logger"
)

type fakeService struct {
	booking *models.BookingResponse
	err     error
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.booking
	resp.ID = id.String()
	return &resp, nil
}

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()
	svc := &fakeService{booking: &models.BookingResponse{Status: "scheduled", TotalPrice: "120.00", Services: []models.BookingServiceResponse{}}}

	rec := serve(svc, "/api/v1/bookings/"+id.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPrice":"120.00"`)
	assert.Contains(t, rec.Body.String(), id.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/bookings/42").Code)

	rec := serve(&fakeService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)

	rec = serve(&fakeService{err: errors.New("db down")}, "/api/v1/bookings/"+uuid.NewString())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
