package update_booking_status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID  int64
	gotReq *models.UpdateStatusRequest
	err    error
}

func (f *fakeService) UpdateStatus(_ context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	f.gotID, f.gotReq = bookingID, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: bookingID, Status: req.Status, CancellationReason: req.Reason}, nil
}

var actor = &domain.Actor{UserID: 10}

func patch(svc *fakeService, url, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	rec := patch(svc, "/bookings/5/status", `{"status":"Cancelled","reason":"Customer asked"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Same(t, actor, svc.gotReq.Actor)
	assert.Equal(t, "Cancelled", svc.gotReq.Status)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "Customer asked", *resp.CancellationReason)
}

func TestHandleFinalized(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("wrapped: %w", &domain.FinalizedError{Status: domain.StatusSaleApproved})}

	rec := patch(svc, "/bookings/5/status", `{"status":"Rebook"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cannot modify booking with status 'Sale Approved'", resp.Message)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad booking id", url: "/bookings/abc/status", body: `{"status":"Rebook"}`, wantStatus: http.StatusBadRequest},
		{name: "broken json", url: "/bookings/5/status", body: `{"status":`, wantStatus: http.StatusBadRequest},
		{name: "unknown status", url: "/bookings/5/status", body: `{"status":"Confirmed"}`, err: bookings.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "long reason", url: "/bookings/5/status", body: `{"status":"Cancelled"}`, err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown booking", url: "/bookings/5/status", body: `{"status":"Rebook"}`, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "not a host", url: "/bookings/5/status", body: `{"status":"Rebook"}`, err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", url: "/bookings/5/status", body: `{"status":"Rebook"}`, err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
