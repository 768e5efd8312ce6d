package date_overrides

import (
	"context"
	"encoding/json"
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
	gotAdd     *models.AddOverrideRequest
	gotDeleted [2]int64
	err        error
}

func (f *fakeService) AddOverride(_ context.Context, req *models.AddOverrideRequest) (*models.OverrideResponse, error) {
	f.gotAdd = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.OverrideResponse{ID: 31, Date: req.Date, Available: req.Available, Reason: req.Reason}, nil
}

func (f *fakeService) DeleteOverride(_ context.Context, _ *domain.Actor, memberID, overrideID int64) error {
	f.gotDeleted = [2]int64{memberID, overrideID}
	return f.err
}

func serve(svc *fakeService, method, url, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/members/{memberId}/date-overrides", h.Add).Methods(http.MethodPost)
	router.HandleFunc("/members/{memberId}/date-overrides/{overrideId}", h.Delete).Methods(http.MethodDelete)

	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), &domain.Actor{UserID: 7}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdd(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, http.MethodPost, "/members/7/date-overrides", `{"date":"2026-03-09","available":false,"reason":"Vacation"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.gotAdd)
	assert.Equal(t, int64(7), svc.gotAdd.MemberID)
	assert.Equal(t, int64(7), svc.gotAdd.Actor.UserID)
	assert.Equal(t, "2026-03-09", svc.gotAdd.Date)
	assert.False(t, svc.gotAdd.Available)

	var resp models.OverrideResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(31), resp.ID)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "Vacation", *resp.Reason)
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, http.MethodDelete, "/members/7/date-overrides/31", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.Equal(t, [2]int64{7, 31}, svc.gotDeleted)
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
		{name: "bad member id", method: http.MethodPost, url: "/members/x/date-overrides", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "bad override id", method: http.MethodDelete, url: "/members/7/date-overrides/-2", wantStatus: http.StatusBadRequest},
		{name: "broken json", method: http.MethodPost, url: "/members/7/date-overrides", body: `[`, wantStatus: http.StatusBadRequest},
		{name: "invalid date", method: http.MethodPost, url: "/members/7/date-overrides", body: `{"date":"soon"}`, err: rules.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown override", method: http.MethodDelete, url: "/members/7/date-overrides/31", err: rules.ErrOverrideNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown member", method: http.MethodPost, url: "/members/7/date-overrides", body: `{}`, err: rules.ErrMemberNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign member", method: http.MethodDelete, url: "/members/7/date-overrides/31", err: rules.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", method: http.MethodDelete, url: "/members/7/date-overrides/31", err: rules.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
