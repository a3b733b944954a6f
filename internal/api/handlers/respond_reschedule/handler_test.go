package respond_reschedule

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

	"github.com/m04kA/spa-booking-service/internal/api/middleware"
	respondReschedule "github.com/m04kA/spa-booking-service/internal/usecase/respond_reschedule"
	"github.com/m04kA/spa-booking-service/pkg/logger"
)

type fakeUseCase struct {
	got *respondReschedule.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *respondReschedule.Request) (*respondReschedule.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &respondReschedule.Response{RequestID: req.RequestID, Status: "accepted"}, nil
}

func serve(uc RespondRescheduleUseCase, id, body, actor string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/reschedule-requests/{requestId}/response", NewHandler(uc, logger.Nop()).Handle)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reschedule-requests/"+id+"/response", strings.NewReader(body))
	req.Header.Set(middleware.ActorIDHeader, actor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_UsesActorAsResponder(t *testing.T) {
	uc := &fakeUseCase{}
	id := uuid.New()

	rec := serve(uc, id.String(), `{"decision":"accept","responseMessage":"See you then"}`, "admin-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, id, uc.got.RequestID)
	assert.Equal(t, "accept", uc.got.Decision)
	assert.Equal(t, "See you then", *uc.got.ResponseMessage)
	assert.Nil(t, uc.got.RespondedBy)
	assert.Equal(t, "admin-1", uc.got.ActorID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: respondReschedule.ErrInvalidInput, status: 400, code: "VALIDATION_ERROR"},
		{err: respondReschedule.ErrRequestNotFound, status: 404, code: "NOT_FOUND"},
		{err: respondReschedule.ErrAlreadyAnswered, status: 409, code: CodeAlreadyAnswered},
		{err: errors.New("boom"), status: 500, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		rec := serve(&fakeUseCase{err: tt.err}, uuid.NewString(), `{"decision":"reject"}`, "admin-1")
		assert.Equal(t, tt.status, rec.Code)
		assert.Contains(t, rec.Body.String(), tt.code)
	}
}

func TestHandle_RequiresActor(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, uuid.NewString(), `{"decision":"accept"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
