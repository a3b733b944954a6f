package update_booking_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	updateStatus "github.com/m04kA/spa-booking-service/internal/usecase/update_booking_status"
	"github.com/m04kA/spa-booking-service/pkg/logger"
)

type fakeUseCase struct {
	got *updateStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &updateStatus.Response{BookingID: req.BookingID, Status: req.Status}, nil
}

func serve(uc UpdateStatusUseCase, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(uc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id+"/status", strings.NewReader(body)))
	return rec
}

func TestHandle_Completed(t *testing.T) {
	uc := &fakeUseCase{}
	id := uuid.New()

	rec := serve(uc, id.String(), `{"status":"completed","sendNotification":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, id, uc.got.BookingID)
	assert.Equal(t, "completed", uc.got.Status)
	assert.True(t, uc.got.SendNotification)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: updateStatus.ErrInvalidInput, status: 400, code: "VALIDATION_ERROR"},
		{err: updateStatus.ErrBookingNotFound, status: 404, code: "NOT_FOUND"},
		{err: updateStatus.ErrBookingFinalized, status: 409, code: CodeBookingFinalized},
		{err: errors.New("boom"), status: 500, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		rec := serve(&fakeUseCase{err: tt.err}, uuid.NewString(), `{"status":"scheduled"}`)
		assert.Equal(t, tt.status, rec.Code)
		assert.Contains(t, rec.Body.String(), tt.code)
	}
}

func TestHandle_BadInput(t *testing.T) {
	uc := &fakeUseCase{}
	assert.Equal(t, http.StatusBadRequest, serve(uc, "not-a-uuid", `{"status":"completed"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, uuid.NewString(), `not json`).Code)
	assert.Nil(t, uc.got)
}
