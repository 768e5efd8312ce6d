package reassign_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	reassignBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/reassign_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *reassignBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *reassignBooking.Request) (*reassignBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &reassignBooking.Response{ID: req.BookingID}, nil
}

func patch(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/reassign", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/7/reassign", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), &domain.Actor{UserID: 1, Roles: []string{domain.RoleSystemManager}}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleReassigned(t *testing.T) {
	uc := &fakeUseCase{}
	rec := patch(uc, `{"newHostId":11}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.BookingID)
	assert.Equal(t, int64(11), uc.got.NewHostID)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "team meeting", err: reassignBooking.ErrTeamMeetingImmutable, wantStatus: http.StatusConflict},
		{name: "finalized", err: &domain.FinalizedError{Status: domain.StatusCancelled}, wantStatus: http.StatusConflict},
		{name: "busy without details", err: reassignBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "outsider", err: reassignBooking.ErrHostNotInDepartment, wantStatus: http.StatusBadRequest},
		{name: "same host", err: reassignBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "forbidden", err: reassignBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "no booking", err: reassignBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "no host", err: reassignBooking.ErrMemberNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeUseCase{err: tt.err}, `{"newHostId":11}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
