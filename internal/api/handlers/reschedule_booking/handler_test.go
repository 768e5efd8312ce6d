package reschedule_booking

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
	rescheduleBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/reschedule_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *rescheduleBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &rescheduleBooking.Response{ID: req.BookingID, StartTime: req.StartTime.String()}, nil
}

func patch(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/reschedule", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), &domain.Actor{UserID: 10}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRescheduled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := patch(uc, "/bookings/5/reschedule", `{"date":"2026-03-04","startTime":"14:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.BookingID)
	assert.Equal(t, int64(10), uc.got.Actor.UserID)
	assert.Equal(t, "2026-03-04", uc.got.Date.Format(domain.DateFormat))
}

func TestHandleFinalizedBooking(t *testing.T) {
	uc := &fakeUseCase{err: &domain.FinalizedError{Status: domain.StatusCompleted}}
	rec := patch(uc, "/bookings/5/reschedule", `{"date":"2026-03-04","startTime":"14:30"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Cannot modify booking with status 'Completed'", body.Message)
}

func TestHandleErrors(t *testing.T) {
	availErr := &domain.AvailabilityError{Members: []domain.UnavailableMember{{
		MemberID: 10,
		Name:     "Ann",
		Result:   domain.NewAvailabilityResult([]domain.Conflict{{Type: domain.ConflictBooking, Message: "Conflicts with existing booking 3 (14:00 - 15:00)"}}),
	}}}

	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/bookings/x/reschedule", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", path: "/bookings/5/reschedule", body: `{"date":"04.03.2026","startTime":"14:30"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/bookings/5/reschedule", err: rescheduleBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", path: "/bookings/5/reschedule", err: rescheduleBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "past", path: "/bookings/5/reschedule", err: rescheduleBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "busy", path: "/bookings/5/reschedule", err: fmt.Errorf("%w: %w", rescheduleBooking.ErrSlotNotAvailable, availErr), wantStatus: http.StatusConflict},
		{name: "internal", path: "/bookings/5/reschedule", err: rescheduleBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = `{"date":"2026-03-04","startTime":"14:30"}`
			}
			rec := patch(&fakeUseCase{err: tt.err}, tt.path, body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
