package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.CancelByTokenRequest
	err error
}

func (f *fakeService) CancelByToken(_ context.Context, req *models.CancelByTokenRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: 3, Status: string(domain.StatusCancelled)}, nil
}

func post(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/bookings/cancel", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandleCancelled(t *testing.T) {
	svc := &fakeService{}
	rec := post(svc, `{"token":" 7d1c6f0e-4d55-4a6b-9a4b-3f2a4e0f1d11 ","reason":"Changed plans"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7d1c6f0e-4d55-4a6b-9a4b-3f2a4e0f1d11", svc.got.Token)
	require.NotNil(t, svc.got.Reason)
	assert.Equal(t, "Changed plans", *svc.got.Reason)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "missing token", body: `{"token":"  "}`, wantStatus: http.StatusBadRequest},
		{name: "broken json", body: `token`, wantStatus: http.StatusBadRequest},
		{name: "unknown token", body: `{"token":"abc"}`, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "already finalized", body: `{"token":"abc"}`, err: &domain.FinalizedError{Status: domain.StatusCancelled}, wantStatus: http.StatusConflict},
		{name: "internal", body: `{"token":"abc"}`, err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
