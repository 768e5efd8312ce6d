package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	"github.com/m04kA/SMC-MeetingService/internal/service/rules/models"
	"github.com/m04kA/SMC-MeetingService/pkg/logger"
	"github.com/m04kA/SMC-MeetingService/pkg/ptr"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeRules struct {
	rule      *domain.AvailabilityRule
	overrides []domain.DateOverride
	created   int
}

func (f *fakeRules) GetDefaultRule(context.Context, int64) (*domain.AvailabilityRule, error) {
	if f.rule == nil {
		return nil, rulesRepo.ErrRuleNotFound
	}
	copied := *f.rule
	return &copied, nil
}

func (f *fakeRules) CreateRule(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	f.created++
	rule.ID = 100
	copied := *rule
	f.rule = &copied
	return rule, nil
}

func (f *fakeRules) UpdateRule(_ context.Context, rule *domain.AvailabilityRule) error {
	copied := *rule
	f.rule = &copied
	return nil
}

func (f *fakeRules) ListOverridesFrom(context.Context, int64, time.Time) ([]domain.DateOverride, error) {
	return f.overrides, nil
}

func (f *fakeRules) AddOverride(_ context.Context, o *domain.DateOverride) (*domain.DateOverride, error) {
	o.ID = int64(len(f.overrides) + 1)
	f.overrides = append(f.overrides, *o)
	return o, nil
}

func (f *fakeRules) DeleteOverride(_ context.Context, _, overrideID int64) error {
	for i, o := range f.overrides {
		if o.ID == overrideID {
			f.overrides = append(f.overrides[:i], f.overrides[i+1:]...)
			return nil
		}
	}
	return rulesRepo.ErrOverrideNotFound
}

type fakeMembers struct {
	hours []byte
}

func (f *fakeMembers) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	if id != 7 {
		return nil, memberRepo.ErrMemberNotFound
	}
	return &domain.Member{ID: 7}, nil
}

func (f *fakeMembers) IsActiveDepartmentMember(_ context.Context, departmentID, memberID int64) (bool, error) {
	return departmentID == 3 && memberID == 7, nil
}

func (f *fakeMembers) GetWorkingHours(context.Context, int64) ([]byte, error) { return f.hours, nil }

func (f *fakeMembers) SetWorkingHours(_ context.Context, _ int64, raw []byte) error {
	f.hours = raw
	return nil
}

func newService() (*Service, *fakeRules, *fakeMembers) {
	rules := &fakeRules{}
	members := &fakeMembers{}
	return NewService(rules, members, passTx{}, fixedClock{}, logger.Nop{}), rules, members
}

var self = &domain.Actor{UserID: 7}

func TestGetRuleWithoutRule(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetRule(context.Background(), self, 7)

	require.NoError(t, err)
	assert.Nil(t, resp.WorkingHours)
	assert.Empty(t, resp.Overrides)
	assert.Zero(t, resp.ID)
}

func TestUpdateRuleCreatesAndNormalizesSchedule(t *testing.T) {
	svc, rules, members := newService()

	resp, err := svc.UpdateRule(context.Background(), &models.UpdateRuleRequest{
		Actor:             self,
		MemberID:          7,
		BufferTimeBefore:  ptr.Ptr(15),
		MaxBookingsPerDay: ptr.Ptr(4),
		WorkingHours: map[string]models.DayScheduleRequest{
			"Monday":   {Enabled: true, Start: "09:00", End: "17:00"},
			"saturday": {Enabled: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, rules.created)
	assert.Equal(t, 15, resp.BufferTimeBefore)
	assert.Equal(t, 4, *resp.MaxBookingsPerDay)
	assert.Equal(t, models.DayScheduleRequest{Enabled: true, Start: "00:00", End: "23:59"}, resp.WorkingHours["saturday"])
	assert.JSONEq(t, `{"monday":{"enabled":true,"start":"09:00","end":"17:00"},"saturday":{"enabled":true,"start":"00:00","end":"23:59"}}`, string(members.hours))

	_, err = svc.UpdateRule(context.Background(), &models.UpdateRuleRequest{Actor: self, MemberID: 7, BufferTimeAfter: ptr.Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 1, rules.created)
	assert.Equal(t, 15, rules.rule.BufferTimeBefore)
	assert.Equal(t, 5, rules.rule.BufferTimeAfter)
}

func TestUpdateRuleValidation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.UpdateRuleRequest
	}{
		{"negative buffer", &models.UpdateRuleRequest{BufferTimeBefore: ptr.Ptr(-1)}},
		{"huge quota", &models.UpdateRuleRequest{MaxBookingsPerWeek: ptr.Ptr(1000)}},
		{"unknown weekday", &models.UpdateRuleRequest{WorkingHours: map[string]models.DayScheduleRequest{"funday": {Enabled: true}}}},
		{"inverted hours", &models.UpdateRuleRequest{WorkingHours: map[string]models.DayScheduleRequest{"monday": {Enabled: true, Start: "17:00", End: "09:00"}}}},
		{"bad time", &models.UpdateRuleRequest{WorkingHours: map[string]models.DayScheduleRequest{"monday": {Enabled: true, Start: "9am"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Actor = self
			tt.req.MemberID = 7
			_, err := svc.UpdateRule(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateRuleAccess(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.UpdateRule(ctx, &models.UpdateRuleRequest{Actor: &domain.Actor{UserID: 8}, MemberID: 7})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdateRule(ctx, &models.UpdateRuleRequest{Actor: &domain.Actor{UserID: 8, LedDepartments: []int64{3}}, MemberID: 7})
	assert.NoError(t, err)

	_, err = svc.UpdateRule(ctx, &models.UpdateRuleRequest{Actor: self, MemberID: 404})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestAddOverride(t *testing.T) {
	svc, rules, _ := newService()
	ctx := context.Background()

	resp, err := svc.AddOverride(ctx, &models.AddOverrideRequest{
		Actor:            self,
		MemberID:         7,
		Date:             "2026-03-09",
		Available:        true,
		CustomHoursStart: ptr.Ptr("18:00"),
		CustomHoursEnd:   ptr.Ptr("20:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, "18:00", *resp.CustomHoursStart)
	assert.Equal(t, 1, rules.created)
	assert.Equal(t, int64(100), rules.overrides[0].RuleID)
}

func TestAddOverrideValidation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.AddOverrideRequest
	}{
		{"bad date", &models.AddOverrideRequest{Date: "09.03.2026"}},
		{"past date", &models.AddOverrideRequest{Date: "2026-03-01"}},
		{"half window", &models.AddOverrideRequest{Date: "2026-03-09", Available: true, CustomHoursStart: ptr.Ptr("18:00")}},
		{"window on unavailable day", &models.AddOverrideRequest{Date: "2026-03-09", CustomHoursStart: ptr.Ptr("18:00"), CustomHoursEnd: ptr.Ptr("20:00")}},
		{"inverted window", &models.AddOverrideRequest{Date: "2026-03-09", Available: true, CustomHoursStart: ptr.Ptr("20:00"), CustomHoursEnd: ptr.Ptr("18:00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Actor = self
			tt.req.MemberID = 7
			_, err := svc.AddOverride(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteOverride(t *testing.T) {
	svc, rules, _ := newService()
	rules.overrides = []domain.DateOverride{{ID: 1}}
	ctx := context.Background()

	require.NoError(t, svc.DeleteOverride(ctx, self, 7, 1))
	assert.ErrorIs(t, svc.DeleteOverride(ctx, self, 7, 1), ErrOverrideNotFound)
}
