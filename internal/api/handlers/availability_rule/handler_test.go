package availability_rule

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

	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotActor  *domain.Actor
	gotMember int64
	gotUpdate *models.UpdateRuleRequest
	err       error
}

func (f *fakeService) GetRule(_ context.Context, actor *domain.Actor, memberID int64) (*models.RuleResponse, error) {
	f.gotActor, f.gotMember = actor, memberID
	if f.err != nil {
		return nil, f.err
	}
	return &models.RuleResponse{MemberID: memberID, BufferTimeBefore: 15, Overrides: []models.OverrideResponse{}}, nil
}

func (f *fakeService) UpdateRule(_ context.Context, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	f.gotUpdate = req
	if f.err != nil {
		return nil, f.err
	}
	resp := &models.RuleResponse{MemberID: req.MemberID, WorkingHours: req.WorkingHours, Overrides: []models.OverrideResponse{}}
	if req.BufferTimeAfter != nil {
		resp.BufferTimeAfter = *req.BufferTimeAfter
	}
	return resp, nil
}

var actor = &domain.Actor{UserID: 7}

func serve(svc *fakeService, method, url, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/members/{memberId}/availability-rule", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/members/{memberId}/availability-rule", h.Update).Methods(http.MethodPut)

	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGet(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, http.MethodGet, "/members/7/availability-rule", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, actor, svc.gotActor)
	assert.Equal(t, int64(7), svc.gotMember)

	var resp models.RuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 15, resp.BufferTimeBefore)
	assert.Nil(t, resp.WorkingHours)
}

func TestUpdate(t *testing.T) {
	svc := &fakeService{}
	body := `{"bufferTimeAfter":10,"workingHours":{"monday":{"enabled":true,"start":"09:00","end":"17:00"}}}`

	rec := serve(svc, http.MethodPut, "/members/7/availability-rule", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotUpdate)
	assert.Same(t, actor, svc.gotUpdate.Actor)
	assert.Equal(t, int64(7), svc.gotUpdate.MemberID)
	assert.Nil(t, svc.gotUpdate.BufferTimeBefore)
	require.NotNil(t, svc.gotUpdate.BufferTimeAfter)
	assert.Equal(t, 10, *svc.gotUpdate.BufferTimeAfter)
	assert.Equal(t, models.DayScheduleRequest{Enabled: true, Start: "09:00", End: "17:00"}, svc.gotUpdate.WorkingHours["monday"])

	var resp models.RuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.BufferTimeAfter)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		url        string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad member id", method: http.MethodGet, url: "/members/0/availability-rule", wantStatus: http.StatusBadRequest},
		{name: "broken json", method: http.MethodPut, url: "/members/7/availability-rule", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "unknown member", method: http.MethodGet, url: "/members/7/availability-rule", err: rules.ErrMemberNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign member", method: http.MethodPut, url: "/members/7/availability-rule", body: `{}`, err: rules.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid schedule", method: http.MethodPut, url: "/members/7/availability-rule", body: `{}`,
			err: fmt.Errorf("%w: monday end must be after start", rules.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", method: http.MethodGet, url: "/members/7/availability-rule", err: rules.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
