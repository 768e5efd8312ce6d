package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

func TestFinalizedStatuses(t *testing.T) {
	for _, s := range FinalizedStatuses {
		assert.True(t, s.IsFinalized(), s)
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, StatusNewBooking.IsFinalized())
	assert.False(t, StatusRebook.IsFinalized())

	_, err := ParseBookingStatus("Confirmed")
	assert.Error(t, err)

	status, err := ParseBookingStatus("No Answer 1-3")
	require.NoError(t, err)
	assert.Equal(t, StatusNoAnswer1to3, status)
}

func TestPrimaryHostFallback(t *testing.T) {
	b := &Booking{AssignedUsers: []AssignedUser{{MemberID: 5}, {MemberID: 6}}}
	host, ok := b.PrimaryHost()
	require.True(t, ok)
	assert.Equal(t, int64(5), host.MemberID)

	b.AssignedUsers[1].IsPrimaryHost = true
	host, _ = b.PrimaryHost()
	assert.Equal(t, int64(6), host.MemberID)

	_, ok = (&Booking{}).PrimaryHost()
	assert.False(t, ok)
}

func TestReplacePrimaryHost(t *testing.T) {
	b := &Booking{ID: 1, AssignedUsers: []AssignedUser{
		{MemberID: 5, IsPrimaryHost: true},
		{MemberID: 7},
	}}

	old := b.ReplacePrimaryHost(7)

	assert.Equal(t, int64(5), old)
	require.Len(t, b.AssignedUsers, 1)
	assert.Equal(t, int64(7), b.AssignedUsers[0].MemberID)
	assert.True(t, b.AssignedUsers[0].IsPrimaryHost)
}

func TestParseWeeklySchedule(t *testing.T) {
	raw := []byte(`{"monday": {"enabled": true, "start": "09:00", "end": "17:00"},
		"tuesday": {"enabled": false}, "funday": {"enabled": true}}`)

	schedule := ParseWeeklySchedule(raw)
	require.NotNil(t, schedule)

	monday, ok := schedule.Days[time.Monday]
	require.True(t, ok)
	assert.True(t, monday.Enabled)
	assert.Equal(t, types.TimeString("09:00"), monday.Start)
	assert.Equal(t, types.TimeString("17:00"), monday.End)

	tuesday := schedule.Days[time.Tuesday]
	assert.False(t, tuesday.Enabled)
	assert.Len(t, schedule.Days, 2)

	assert.Nil(t, ParseWeeklySchedule(nil))
	assert.Nil(t, ParseWeeklySchedule([]byte("{not json")))
	assert.Nil(t, ParseWeeklySchedule([]byte("  ")))
}

func TestWeeklyScheduleRoundTripDefaults(t *testing.T) {
	schedule := ParseWeeklySchedule([]byte(`{"friday": {"enabled": true}}`))
	require.NotNil(t, schedule)
	friday := schedule.Days[time.Friday]
	assert.Equal(t, types.TimeString(DefaultWorkStart), friday.Start)
	assert.Equal(t, types.TimeString(DefaultWorkEnd), friday.End)

	raw, err := MarshalWeeklySchedule(schedule)
	require.NoError(t, err)
	assert.JSONEq(t, `{"friday": {"enabled": true, "start": "00:00", "end": "23:59"}}`, string(raw))
}

func TestAvailabilityError(t *testing.T) {
	single := &AvailabilityError{Members: []UnavailableMember{
		{Name: "Bob", Result: NewAvailabilityResult([]Conflict{{Type: ConflictBlockedSlot, Message: "Blocked: Dentist (10:00 - 11:00)"}})},
	}}
	assert.Equal(t, "Blocked: Dentist (10:00 - 11:00)", single.Error())

	single.Team = true
	assert.Equal(t, "Some participants are not available: Bob: Blocked: Dentist (10:00 - 11:00)", single.Error())

	multi := &AvailabilityError{Members: []UnavailableMember{
		{Name: "Bob", Result: NewAvailabilityResult([]Conflict{{Message: "Member is not available on Sundays"}})},
		{Name: "Eve", Result: NewAvailabilityResult([]Conflict{{Message: "Conflicts with existing booking 3 (10:00 - 10:30)"}})},
	}}
	assert.Equal(t, "Some participants are not available: Bob: Member is not available on Sundays; "+
		"Eve: Conflicts with existing booking 3 (10:00 - 10:30)", multi.Error())
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+4412345678", NormalizePhone("+44 (123) 456-78"))
	assert.Equal(t, "5551234", NormalizePhone("555-1234"))
	assert.Equal(t, "john@example.com", NormalizeEmail("  John@Example.COM "))
}

func TestActorCapabilities(t *testing.T) {
	participant := int64(9)
	team := &Booking{
		DepartmentID:  3,
		IsInternal:    true,
		AssignedUsers: []AssignedUser{{MemberID: 1, IsPrimaryHost: true}},
		Participants:  []Participant{{MemberID: &participant, ParticipantType: ParticipantInternal}},
	}

	host := &Actor{UserID: 1}
	member := &Actor{UserID: 9}
	leader := &Actor{UserID: 20, LedDepartments: []int64{3}}
	admin := &Actor{UserID: 30, Roles: []string{RoleSystemManager}}

	assert.True(t, host.CanRescheduleBooking(team))
	assert.False(t, member.CanRescheduleBooking(team))
	assert.True(t, member.CanViewBooking(team))
	assert.True(t, leader.CanReassignBooking(team))
	assert.True(t, admin.CanReassignBooking(team))
	assert.False(t, host.CanReassignBooking(team))

	team.IsInternal = false
	assert.True(t, member.CanRescheduleBooking(team))
}

func TestEnsureMutable(t *testing.T) {
	for _, s := range FinalizedStatuses {
		err := (&Booking{Status: s}).EnsureMutable()
		var finalized *FinalizedError
		require.ErrorAs(t, err, &finalized)
		assert.Equal(t, "Cannot modify booking with status '"+string(s)+"'", err.Error())
	}
	assert.NoError(t, (&Booking{Status: StatusRebook}).EnsureMutable())
}

func TestActingRoleFor(t *testing.T) {
	b := &Booking{DepartmentID: 3, AssignedUsers: []AssignedUser{{MemberID: 10}}}

	assert.Equal(t, ActingRoleSystemManager, (&Actor{UserID: 1, Roles: []string{RoleSystemManager}}).ActingRoleFor(b))
	assert.Equal(t, ActingRoleDepartmentLeader, (&Actor{UserID: 2, LedDepartments: []int64{3}}).ActingRoleFor(b))
	assert.Equal(t, ActingRoleHost, (&Actor{UserID: 10}).ActingRoleFor(b))
	assert.Equal(t, ActingRoleUser, (&Actor{UserID: 11}).ActingRoleFor(b))
}

func TestSlotGridCandidates(t *testing.T) {
	grid := DefaultSlotGrid()
	now := time.Date(2026, 3, 2, 10, 10, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	tomorrow := grid.Candidates(tuesday, 30, now)
	require.Len(t, tomorrow, 16)
	assert.Equal(t, types.TimeString("09:00"), tomorrow[0])
	assert.Equal(t, types.TimeString("16:30"), tomorrow[15])

	today := grid.Candidates(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 60, now)
	require.Len(t, today, 12)
	assert.Equal(t, types.TimeString("11:00"), today[0])

	assert.Empty(t, grid.Candidates(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 60, now))
	assert.Empty(t, grid.Candidates(tuesday, 0, now))
}

func TestSlotGridCandidatesIgnoreDuration(t *testing.T) {
	grid := DefaultSlotGrid()
	now := time.Date(2026, 3, 2, 10, 10, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	for _, duration := range []int{60, 90, 481} {
		got := grid.Candidates(tuesday, duration, now)
		require.Len(t, got, 16)
		assert.Equal(t, types.TimeString("16:30"), got[15])
	}
}
