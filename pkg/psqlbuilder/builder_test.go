package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"professional_id": "p-1"}).
		Where(squirrel.GtOrEq{"date": "2025-06-01"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE professional_id = $1 AND date >= $2", query)
	assert.Equal(t, []interface{}{"p-1", "2025-06-01"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("reschedule_requests").
		Set("status", "accepted").
		Where(squirrel.Eq{"id": "r-1", "status": "pending"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE reschedule_requests SET status = $1 WHERE id = $2 AND status = $3", query)
	assert.Equal(t, []interface{}{"accepted", "r-1", "pending"}, args)
}
