package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureZoneOverlapConstraint_NoopOnSQLite(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, EnsureZoneOverlapConstraint(db))
}

func TestZoneOverlapConstraintScopedToZoneBookings(t *testing.T) {
	// Slot bookings share the slot's window until capacity is reached, so
	// the exclusion constraint must only cover zone-direct rows.
	assert.Contains(t, zoneOverlapConstraintDDL, "schedule_slot_id IS NULL")
	assert.Contains(t, zoneOverlapConstraintDDL, "status <> 'cancelled'")
}
