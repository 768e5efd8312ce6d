package resolve_customer

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

	"github.com/m04kA/SMC-MeetingService/internal/service/customers"
	"github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got  *models.ResolveRequest
	resp *models.ResolveResponse
	err  error
}

func (f *fakeService) FindOrCreate(_ context.Context, req *models.ResolveRequest) (*models.ResolveResponse, error) {
	f.got = req
	return f.resp, f.err
}

func post(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

const body = `{"name":"Ann","email":"ann@example.com","phone":"+44 7700 900123"}`

func TestHandleCreatedCustomer(t *testing.T) {
	svc := &fakeService{resp: &models.ResolveResponse{CustomerID: 8, Name: "Ann", Created: true, MatchedBy: models.MatchedNone}}

	rec := post(svc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "ann@example.com", svc.got.Email)
	require.NotNil(t, svc.got.Phone)
	assert.Equal(t, "+44 7700 900123", *svc.got.Phone)

	var resp models.ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(8), resp.CustomerID)
	assert.True(t, resp.Created)
	assert.Equal(t, "created", resp.MatchedBy)
}

func TestHandleExistingCustomer(t *testing.T) {
	svc := &fakeService{resp: &models.ResolveResponse{CustomerID: 3, Name: "Ann", MatchedBy: models.MatchedByPhone}}

	rec := post(svc, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Created)
	assert.Equal(t, "phone", resp.MatchedBy)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "broken json", body: `{"email":`, wantStatus: http.StatusBadRequest},
		{name: "no contact", body: `{"name":"Ann"}`, err: fmt.Errorf("%w: email or phone is required", customers.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "contact owned elsewhere", body: body, err: customers.ErrDuplicateContact, wantStatus: http.StatusConflict},
		{name: "internal", body: body, err: customers.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
