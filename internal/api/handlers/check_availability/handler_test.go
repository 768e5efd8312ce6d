package check_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got    *models.CheckRequest
	result *domain.AvailabilityResult
	err    error
}

func (f *fakeService) CheckMemberAvailability(_ context.Context, req *models.CheckRequest) (*domain.AvailabilityResult, error) {
	f.got = req
	return f.result, f.err
}

func serve(svc *fakeService, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), &domain.Actor{UserID: 1}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

const body = `{"memberId":7,"date":"2026-03-03","startTime":"10:15","durationMinutes":30,"excludeBookingId":4}`

func TestHandleAvailable(t *testing.T) {
	svc := &fakeService{result: domain.NewAvailabilityResult(nil)}

	rec := serve(svc, body, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(7), svc.got.MemberID)
	assert.Equal(t, "2026-03-03", svc.got.Date.Format(domain.DateFormat))
	assert.Equal(t, "10:15", svc.got.StartTime.String())
	assert.Equal(t, 30, svc.got.DurationMinutes)
	require.NotNil(t, svc.got.ExcludeBookingID)
	assert.Equal(t, int64(4), *svc.got.ExcludeBookingID)

	var resp models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Nil(t, resp.Reason)
	assert.Empty(t, resp.Conflicts)
}

func TestHandleUnavailableIsStillOK(t *testing.T) {
	bookingID := int64(42)
	svc := &fakeService{result: domain.NewAvailabilityResult([]domain.Conflict{
		{Type: domain.ConflictBlockedSlot, Message: "Blocked: Dentist (10:00 - 11:00)"},
		{Type: domain.ConflictBooking, Message: "Conflicts with existing booking 42 (10:00 - 10:30)", BookingID: &bookingID},
	})}

	rec := serve(svc, body, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "Blocked: Dentist (10:00 - 11:00)", *resp.Reason)
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, "blocked_slot", resp.Conflicts[0].Type)
	assert.Equal(t, "booking_conflict", resp.Conflicts[1].Type)
	assert.Equal(t, &bookingID, resp.Conflicts[1].BookingID)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withActor  bool
		err        error
		wantStatus int
	}{
		{name: "no actor", body: body, wantStatus: http.StatusUnauthorized},
		{name: "broken json", body: `{`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"memberId":7,"date":"03.03.2026","startTime":"10:00","durationMinutes":30}`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"memberId":7,"date":"2026-03-03","startTime":"25:00","durationMinutes":30}`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: body, withActor: true, err: fmt.Errorf("%w: duration must be positive", availability.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "unknown member", body: body, withActor: true, err: availability.ErrMemberNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", body: body, withActor: true, err: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body, tt.withActor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
