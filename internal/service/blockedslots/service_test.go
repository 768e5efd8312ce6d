package blockedslots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/blockedslot"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	"github.com/m04kA/SMC-MeetingService/internal/service/blockedslots/models"
	"github.com/m04kA/SMC-MeetingService/pkg/logger"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlots struct {
	slots []domain.BlockedSlot
}

func (f *fakeSlots) ListByMemberAndDate(_ context.Context, memberID int64, date time.Time) ([]domain.BlockedSlot, error) {
	return f.ListByMember(context.Background(), memberID, date, date)
}

func (f *fakeSlots) ListByMember(_ context.Context, memberID int64, from, to time.Time) ([]domain.BlockedSlot, error) {
	out := make([]domain.BlockedSlot, 0)
	for _, s := range f.slots {
		if s.MemberID == memberID && !s.BlockedDate.Before(types.DateOnly(from)) && !s.BlockedDate.After(types.DateOnly(to)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlots) Create(_ context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	slot.ID = int64(len(f.slots) + 1)
	f.slots = append(f.slots, *slot)
	return slot, nil
}

func (f *fakeSlots) Delete(_ context.Context, memberID, slotID int64) error {
	for i, s := range f.slots {
		if s.ID == slotID && s.MemberID == memberID {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return blockedSlotRepo.ErrBlockedSlotNotFound
}

type fakeMembers struct {
	locked [][]int64
}

func (f *fakeMembers) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	if id != 7 {
		return nil, memberRepo.ErrMemberNotFound
	}
	return &domain.Member{ID: id}, nil
}

func (f *fakeMembers) LockMembers(_ context.Context, ids []int64) error {
	f.locked = append(f.locked, ids)
	return nil
}

func (f *fakeMembers) IsActiveDepartmentMember(_ context.Context, departmentID, memberID int64) (bool, error) {
	return departmentID == 3 && memberID == 7, nil
}

func newService() (*Service, *fakeSlots, *fakeMembers) {
	slots := &fakeSlots{slots: []domain.BlockedSlot{{
		ID:          1,
		MemberID:    7,
		BlockedDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Reason:      "Dentist",
	}}}
	members := &fakeMembers{}
	return NewService(slots, members, passTx{}, logger.Nop{}), slots, members
}

var self = &domain.Actor{UserID: 7}

func TestCreate(t *testing.T) {
	svc, slots, members := newService()

	resp, err := svc.Create(context.Background(), &models.CreateRequest{
		Actor:     self,
		MemberID:  7,
		Date:      "2026-03-03",
		StartTime: "11:00",
		EndTime:   "12:00",
		Reason:    " Lunch ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Lunch", resp.Reason)
	assert.Equal(t, "11:00", resp.StartTime)
	assert.Len(t, slots.slots, 2)
	assert.Equal(t, [][]int64{{7}}, members.locked)
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), &models.CreateRequest{
		Actor:     self,
		MemberID:  7,
		Date:      "2026-03-03",
		StartTime: "10:30",
		EndTime:   "11:30",
		Reason:    "Gym",
	})

	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newService()

	tests := []struct {
		name string
		req  models.CreateRequest
	}{
		{"bad date", models.CreateRequest{Date: "03/03/2026", StartTime: "10:00", EndTime: "11:00", Reason: "x"}},
		{"inverted", models.CreateRequest{Date: "2026-03-04", StartTime: "11:00", EndTime: "10:00", Reason: "x"}},
		{"equal", models.CreateRequest{Date: "2026-03-04", StartTime: "10:00", EndTime: "10:00", Reason: "x"}},
		{"empty reason", models.CreateRequest{Date: "2026-03-04", StartTime: "10:00", EndTime: "11:00", Reason: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Actor = self
			req.MemberID = 7
			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListAndDelete(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	leader := &domain.Actor{UserID: 99, LedDepartments: []int64{3}}

	resp, err := svc.List(ctx, &models.ListRequest{
		Actor:    leader,
		MemberID: 7,
		From:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.BlockedSlots, 1)
	assert.Equal(t, "Dentist", resp.BlockedSlots[0].Reason)

	assert.ErrorIs(t, svc.Delete(ctx, &domain.Actor{UserID: 8}, 7, 1), ErrAccessDenied)
	require.NoError(t, svc.Delete(ctx, leader, 7, 1))
	assert.ErrorIs(t, svc.Delete(ctx, leader, 7, 1), ErrBlockedSlotNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, leader, 404, 1), ErrMemberNotFound)
}
