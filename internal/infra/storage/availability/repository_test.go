package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

func TestGetDefaultRulePrefersDefaultFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM availability_rules WHERE member_id = \$1 ORDER BY is_default DESC, id ASC LIMIT 1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "member_id", "name", "is_default", "buffer_time_before", "buffer_time_after",
			"max_bookings_per_day", "max_bookings_per_week", "min_notice_hours", "max_days_advance",
			"created_at", "updated_at",
		}).AddRow(int64(1), int64(5), "Default", true, int64(15), int64(0), int64(2), nil, nil, int64(60), now, now))

	rule, err := NewRepository(db).GetDefaultRule(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 15, rule.BufferTimeBefore)
	require.NotNil(t, rule.MaxBookingsPerDay)
	assert.Equal(t, 2, *rule.MaxBookingsPerDay)
	assert.Nil(t, rule.MaxBookingsPerWeek)
	assert.Nil(t, rule.MinNoticeHours)
	require.NotNil(t, rule.MaxDaysAdvance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDefaultRuleNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM availability_rules`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewRepository(db).GetDefaultRule(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestListOverridesForDateScansCustomHours(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM date_overrides o JOIN availability_rules r ON r.id = o.rule_id WHERE \(r.member_id = \$1 AND o.override_date = \$2\)`).
		WithArgs(int64(5), date).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rule_id", "override_date", "available", "custom_hours_start", "custom_hours_end", "reason"}).
			AddRow(int64(1), int64(1), date, true, []byte("18:00:00"), []byte("20:00:00"), nil).
			AddRow(int64(2), int64(1), date, true, nil, nil, "Open day"))

	overrides, err := NewRepository(db).ListOverridesForDate(context.Background(), 5, date.Add(10*time.Hour))
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	require.True(t, overrides[0].HasCustomHours())
	assert.Equal(t, types.TimeString("18:00"), *overrides[0].CustomHoursStart)
	assert.Equal(t, types.TimeString("20:00"), *overrides[0].CustomHoursEnd)
	assert.False(t, overrides[1].HasCustomHours())
	require.NotNil(t, overrides[1].Reason)
	assert.Equal(t, "Open day", *overrides[1].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOverrideNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM date_overrides WHERE id = \$1 AND rule_id IN \(SELECT id FROM availability_rules WHERE member_id = \$2\)`).
		WithArgs(int64(9), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).DeleteOverride(context.Background(), 5, 9)
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}
