package blockedslot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

var columns = []string{"id", "member_id", "blocked_date", "start_time", "end_time", "reason", "created_at"}

func TestListByMemberAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM blocked_slots WHERE member_id = \$1 AND blocked_date >= \$2 AND blocked_date <= \$3 ORDER BY blocked_date ASC, start_time ASC`).
		WithArgs(int64(7), day, day).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(7), day, "09:00:00", "10:00:00", "Dentist", created).
			AddRow(int64(2), int64(7), day, "14:30:00", "15:00:00", "School run", nil))

	slots, err := NewRepository(db).ListByMemberAndDate(context.Background(), 7, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "Dentist", slots[0].Reason)
	assert.Equal(t, created, slots[0].CreatedAt)
	assert.Equal(t, "14:30", slots[1].StartTime.String())
	assert.True(t, slots[1].CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByMemberEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM blocked_slots`).
		WillReturnRows(sqlmock.NewRows(columns))

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	slots, err := NewRepository(db).ListByMember(context.Background(), 7, from, from.AddDate(0, 1, -1))
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO blocked_slots .* RETURNING id, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(15), created))

	slot, err := NewRepository(db).Create(context.Background(), &domain.BlockedSlot{
		MemberID:    7,
		BlockedDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Reason:      "Dentist",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), slot.ID)
	assert.Equal(t, created, slot.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM blocked_slots WHERE id = \$1 AND member_id = \$2`).
		WithArgs(int64(15), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRepository(db).Delete(context.Background(), 7, 15))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForeignSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM blocked_slots`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Delete(context.Background(), 8, 15)
	assert.ErrorIs(t, err, ErrBlockedSlotNotFound)
}
