package list_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/spa-booking-service/internal/service/bookings"
	"github.com/m04kA/spa-booking-service/internal/service/bookings/models"
	"github.com/m04kA/spa-booking-service/pkg/logger"
)

type fakeService struct {
	got *models.ListBookingsRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: "b1", TotalPrice: "10.00"}}}, nil
}

func TestHandle_PassesQueryParameters(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/bookings?professional_id=p1&service_id=3&client=ana&time=10:00&time_from=09:00&time_to=12:00&from=2025-03-01&to=2025-03-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookings":[`)

	assert.Equal(t, &models.ListBookingsRequest{
		ProfessionalID: "p1",
		ServiceID:      "3",
		Client:         "ana",
		Time:           "10:00",
		TimeFrom:       "09:00",
		TimeTo:         "12:00",
		From:           "2025-03-01",
		To:             "2025-03-31",
	}, svc.got)
}

func TestHandle_InvalidFilter(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: service_id", bookings.ErrInvalidInput)}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?service_id=x", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestHandle_InternalError(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: db down", bookings.ErrInternal)}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
