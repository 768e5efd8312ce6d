package create_booking

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

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, body string, actor *domain.Actor) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

const validBody = `{"meetingTypeId":3,"memberId":10,"date":"2026-03-04","startTime":"10:00",
	"customer":{"name":"Ann","email":"ann@example.com"}}`

func TestHandleCreated(t *testing.T) {
	uc := &fakeUseCase{resp: &bookingModels.BookingResponse{ID: 55, Status: string(domain.StatusNewBooking)}}
	actor := &domain.Actor{UserID: 1, LedDepartments: []int64{2}}

	rec := serve(t, uc, validBody, actor)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, createBooking.KindCustomer, uc.got.Kind)
	assert.Same(t, actor, uc.got.Actor)
	assert.Equal(t, int64(10), uc.got.MemberID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.Equal(t, "2026-03-04", uc.got.Date.Format(domain.DateFormat))
	require.NotNil(t, uc.got.Customer)
	assert.Equal(t, "ann@example.com", uc.got.Customer.Email)

	var body bookingModels.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(55), body.ID)
}

func TestHandleSlotNotAvailableListsConflicts(t *testing.T) {
	availErr := &domain.AvailabilityError{Members: []domain.UnavailableMember{{
		MemberID: 10,
		Name:     "Bob",
		Result: domain.NewAvailabilityResult([]domain.Conflict{
			{Type: domain.ConflictWorkingHours, Message: "Time is outside working hours (09:00 - 17:00)"},
			{Type: domain.ConflictBufferTime, Message: "Violates 15-minute buffer after meeting (conflicts with 8)"},
		}),
	}}}
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", createBooking.ErrSlotNotAvailable, availErr)}

	rec := serve(t, uc, validBody, &domain.Actor{UserID: 1})

	require.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.ConflictErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Time is outside working hours (09:00 - 17:00)", body.Message)
	require.Len(t, body.Members, 1)
	assert.Len(t, body.Members[0].Conflicts, 2)
	assert.Equal(t, "buffer_time", body.Members[0].Conflicts[1].Type)
}

func TestHandleBookingWindowMessage(t *testing.T) {
	availErr := &domain.AvailabilityError{Members: []domain.UnavailableMember{{
		MemberID: 10,
		Name:     "Bob",
		Result: domain.NewAvailabilityResult([]domain.Conflict{
			{Type: domain.ConflictAvailabilityRule, Message: "Booking requires at least 24 hours notice"},
		}),
	}}}
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", createBooking.ErrBookingWindow, availErr)}

	rec := serve(t, uc, validBody, &domain.Actor{UserID: 1})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Booking requires at least 24 hours notice", body.Message)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{name: "no actor", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "broken json", body: `{`, actor: &domain.Actor{UserID: 1}, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"date":"2026-03-04","startTime":"25:00"}`, actor: &domain.Actor{UserID: 1}, wantStatus: http.StatusBadRequest},
		{name: "meeting type", body: validBody, actor: &domain.Actor{UserID: 1}, err: createBooking.ErrMeetingTypeNotFound, wantStatus: http.StatusNotFound},
		{name: "member", body: validBody, actor: &domain.Actor{UserID: 1}, err: createBooking.ErrMemberNotFound, wantStatus: http.StatusNotFound},
		{name: "access", body: validBody, actor: &domain.Actor{UserID: 1}, err: createBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "past", body: validBody, actor: &domain.Actor{UserID: 1}, err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "department", body: validBody, actor: &domain.Actor{UserID: 1}, err: createBooking.ErrHostNotInDepartment, wantStatus: http.StatusBadRequest},
		{name: "internal", body: validBody, actor: &domain.Actor{UserID: 1}, err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err, resp: &bookingModels.BookingResponse{}}
			rec := serve(t, uc, tt.body, tt.actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
