package member

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockMembersOrdersAndLocks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM members WHERE id = ANY\(\$1\) ORDER BY id FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(5)))

	err = NewRepository(db).LockMembers(context.Background(), []int64{5, 2, 5})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockMembersMissingMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

	err = NewRepository(db).LockMembers(context.Background(), []int64{2, 3})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGetWorkingHoursNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT working_hours_json FROM members WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"working_hours_json"}).AddRow(nil))

	raw, err := NewRepository(db).GetWorkingHours(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestIsActiveDepartmentMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM department_members dm JOIN members m ON m.id = dm.member_id`).
		WithArgs(int64(3), true, int64(9), true).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	ok, err := NewRepository(db).IsActiveDepartmentMember(context.Background(), 3, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}
