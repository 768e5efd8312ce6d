package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"id": 7}).
		Where(squirrel.NotEq{"booking_status": "Cancelled"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE id = $1 AND booking_status <> $2", query)
	assert.Equal(t, []interface{}{7, "Cancelled"}, args)
}

func TestUpdateAndDelete(t *testing.T) {
	query, _, err := Update("bookings").Set("booking_status", "Rebook").Where(squirrel.Eq{"id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET booking_status = $1 WHERE id = $2", query)

	query, _, err = Delete("blocked_slots").Where(squirrel.Eq{"id": 3}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM blocked_slots WHERE id = $1", query)
}
