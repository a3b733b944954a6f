package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/spa-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/spa-booking-service/pkg/logger"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

const validBody = `{
	"date": "2025-03-14",
	"time": "14:30",
	"client": {"name": "Ana", "phone": "+55 11 99999-0000", "roomNumber": "204"},
	"services": [{"serviceId": 1, "quantity": 2}, {"serviceId": 3, "variationId": 31}]
}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		BookingID:            uuid.New(),
		ClientID:             uuid.New(),
		Date:                 time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Time:                 types.MustTimeString("14:30"),
		Status:               "scheduled",
		TotalPrice:           250,
		TotalDurationMinutes: 150,
		CreatedAt:            time.Now(),
	}}

	rec := serve(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uc.resp.BookingID.String(), body.BookingID)
	assert.Equal(t, "250.00", body.TotalPrice)
	assert.Equal(t, "14:30:00", body.Time)

	require.NotNil(t, uc.got)
	assert.Equal(t, "204", *uc.got.Client.RoomNumber)
	require.Len(t, uc.got.Services, 2)
	assert.Equal(t, 2, *uc.got.Services[0].Quantity)
	assert.Nil(t, uc.got.Services[1].Quantity)
	assert.Equal(t, int64(31), *uc.got.Services[1].VariationID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{name: "validation", err: fmt.Errorf("%w: date is required", createBooking.ErrInvalidInput), status: 400, code: "VALIDATION_ERROR"},
		{name: "professional", err: createBooking.ErrProfessionalNotFound, status: 404, code: "PROFESSIONAL_NOT_FOUND"},
		{name: "services", err: &createBooking.ServicesNotFoundError{IDs: []int64{3, 7}}, status: 404, code: "SERVICES_NOT_FOUND", contains: `"missingServiceIds":[3,7]`},
		{name: "variation", err: createBooking.ErrVariationNotFound, status: 404, code: "VARIATION_NOT_FOUND"},
		{name: "conflict", err: createBooking.ErrConflictingProfessionals, status: 409, code: "SERVICES_WITH_DIFFERENT_PROFESSIONALS"},
		{name: "internal", err: fmt.Errorf("%w: db down", createBooking.ErrInternal), status: 500, code: "INTERNAL_ERROR"},
		{name: "unknown", err: errors.New("boom"), status: 500, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, `{"date": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"date":"2025-03-14","time":"10:00","professionalId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Nil(t, uc.got)
}
