package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/logger"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeMembers struct {
	known map[int64]bool
	err   error
}

func (f *fakeMembers) GetByIDs(_ context.Context, ids []int64) ([]*domain.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Member, 0, len(ids))
	for _, id := range ids {
		if f.known[id] {
			out = append(out, &domain.Member{ID: id})
		}
	}
	return out, nil
}

// fakeAvailability занятость задается интервалами в минутах от начала суток
type fakeAvailability struct {
	busy  map[int64][][2]int
	calls int
	err   error
}

func (f *fakeAvailability) AllAvailable(_ context.Context, ids []int64, _ time.Time, start types.TimeString, duration int) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	from, to := start.Minutes(), start.Minutes()+duration
	for _, id := range ids {
		for _, b := range f.busy[id] {
			if from < b[1] && b[0] < to {
				return false, nil
			}
		}
	}
	return true, nil
}

func newUseCase(now time.Time, avail *fakeAvailability, members *fakeMembers) *UseCase {
	return NewUseCase(members, NewFinder(avail, domain.DefaultSlotGrid()), 30, fixedClock{now: now}, logger.Nop{})
}

func starts(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

var (
	monday  = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
)

func TestGetAvailableSlotsSingleMember(t *testing.T) {
	avail := &fakeAvailability{busy: map[int64][][2]int{7: {{10 * 60, 11 * 60}, {12 * 60, 17 * 60}}}}
	uc := newUseCase(monday, avail, &fakeMembers{known: map[int64]bool{7: true}})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, MemberIDs: []int64{7}, Date: tuesday, DurationMinutes: 60})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{"09:00", "11:00"}, starts(resp.Slots))
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[1].EndTime)
}

func TestGetAvailableSlotsTeamIntersection(t *testing.T) {
	avail := &fakeAvailability{busy: map[int64][][2]int{
		7: {{9 * 60, 12 * 60}},
		8: {{13 * 60, 17 * 60}},
	}}
	uc := newUseCase(monday, avail, &fakeMembers{known: map[int64]bool{7: true, 8: true}})

	resp, err := uc.Execute(context.Background(), &Request{MemberIDs: []int64{7, 8, 7}, Date: tuesday})

	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, resp.MemberIDs)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []string{"12:00", "12:30"}, starts(resp.Slots))
}

func TestGetAvailableSlotsOffersLastGridStartForLongMeetings(t *testing.T) {
	uc := newUseCase(monday, &fakeAvailability{}, &fakeMembers{known: map[int64]bool{7: true}})

	resp, err := uc.Execute(context.Background(), &Request{MemberIDs: []int64{7}, Date: tuesday, DurationMinutes: 60})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 16)
	last := resp.Slots[15]
	assert.Equal(t, types.TimeString("16:30"), last.StartTime)
	assert.Equal(t, types.TimeString("17:30"), last.EndTime)
}

func TestGetAvailableSlotsTodaySkipsLeadTime(t *testing.T) {
	now := time.Date(2026, 3, 3, 15, 50, 0, 0, time.UTC)
	uc := newUseCase(now, &fakeAvailability{}, &fakeMembers{known: map[int64]bool{7: true}})

	resp, err := uc.Execute(context.Background(), &Request{MemberIDs: []int64{7}, Date: tuesday})

	require.NoError(t, err)
	assert.Equal(t, []string{"16:30"}, starts(resp.Slots))
}

func TestGetAvailableSlotsErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		members *fakeMembers
		avail   *fakeAvailability
		wantErr error
	}{
		{name: "no members", req: &Request{Date: tuesday}, wantErr: ErrInvalidInput},
		{name: "negative member", req: &Request{MemberIDs: []int64{-1}, Date: tuesday}, wantErr: ErrInvalidInput},
		{name: "no date", req: &Request{MemberIDs: []int64{7}}, wantErr: ErrInvalidInput},
		{name: "too short", req: &Request{MemberIDs: []int64{7}, Date: tuesday, DurationMinutes: 3}, wantErr: ErrInvalidInput},
		{name: "past date", req: &Request{MemberIDs: []int64{7}, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}, wantErr: ErrInvalidDate},
		{name: "beyond horizon", req: &Request{MemberIDs: []int64{7}, Date: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)}, wantErr: ErrDateTooFarInFuture},
		{name: "unknown member", req: &Request{MemberIDs: []int64{7, 9}, Date: tuesday}, wantErr: ErrMemberNotFound},
		{name: "member lookup failure", req: &Request{MemberIDs: []int64{7}, Date: tuesday},
			members: &fakeMembers{err: errors.New("db down")}, wantErr: ErrInternal},
		{name: "availability failure", req: &Request{MemberIDs: []int64{7}, Date: tuesday},
			avail: &fakeAvailability{err: errors.New("db down")}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := tt.members
			if members == nil {
				members = &fakeMembers{known: map[int64]bool{7: true}}
			}
			avail := tt.avail
			if avail == nil {
				avail = &fakeAvailability{}
			}

			_, err := newUseCase(monday, avail, members).Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFinderHasFreeSlotStopsEarly(t *testing.T) {
	avail := &fakeAvailability{busy: map[int64][][2]int{7: {{9 * 60, 10 * 60}}}}
	finder := NewFinder(avail, domain.DefaultSlotGrid())

	ok, err := finder.HasFreeSlot(context.Background(), []int64{7}, tuesday, 30, monday)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, avail.calls)

	avail.busy[7] = [][2]int{{0, 24 * 60}}
	ok, err = finder.HasFreeSlot(context.Background(), []int64{7}, tuesday, 30, monday)
	require.NoError(t, err)
	assert.False(t, ok)
}
