package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jumparena/internal/database"
	"jumparena/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))
	return db
}

func seedZone(t *testing.T, db *gorm.DB, name string) *domain.Zone {
	t.Helper()
	z := &domain.Zone{
		Name:      name,
		Type:      domain.ZoneTrampoline,
		Capacity:  10,
		BasePrice: decimal.RequireFromString("800.00"),
		Status:    domain.ZoneAvailable,
	}
	require.NoError(t, db.Create(z).Error)
	return z
}

func seedSlot(t *testing.T, db *gorm.DB, zoneID int64, from time.Time, capacity int, active bool) *domain.ScheduleSlot {
	t.Helper()
	s := &domain.ScheduleSlot{
		ZoneID:       zoneID,
		DatetimeFrom: from,
		DatetimeTo:   from.Add(time.Hour),
		Capacity:     capacity,
		Price:        decimal.RequireFromString("700.00"),
		LessonType:   "group",
		IsActive:     active,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedSlotBooking(t *testing.T, db *gorm.DB, slot *domain.ScheduleSlot, participants int, status domain.BookingStatus) {
	t.Helper()
	client := &domain.Client{FullName: "Walk-in", Status: domain.ClientActive}
	require.NoError(t, db.Create(client).Error)
	require.NoError(t, db.Create(&domain.Booking{
		ClientID:       client.ID,
		ZoneID:         slot.ZoneID,
		ScheduleSlotID: &slot.ID,
		DatetimeFrom:   slot.DatetimeFrom,
		DatetimeTo:     slot.DatetimeTo,
		Participants:   participants,
		Status:         status,
	}).Error)
}

func TestListUpcoming_SeatAccounting(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleSlotRepository(db)
	zone := seedZone(t, db, "Main Arena")

	slot := seedSlot(t, db, zone.ID, testNow.Add(2*time.Hour), 8, true)
	seedSlotBooking(t, db, slot, 3, domain.BookingConfirmed)
	seedSlotBooking(t, db, slot, 2, domain.BookingNew)
	seedSlotBooking(t, db, slot, 4, domain.BookingCancelled)

	out, err := repo.ListUpcoming(context.Background(), testNow, nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	// cancelled seats do not count
	assert.Equal(t, 5, out[0].Booked)
	assert.Equal(t, 3, out[0].FreeSeats)
}

func TestListUpcoming_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleSlotRepository(db)
	zoneA := seedZone(t, db, "Main Arena")
	zoneB := seedZone(t, db, "Foam Pit")

	seedSlot(t, db, zoneA.ID, testNow.Add(2*time.Hour), 8, true)
	seedSlot(t, db, zoneB.ID, testNow.Add(3*time.Hour), 6, true)
	seedSlot(t, db, zoneA.ID, testNow.Add(26*time.Hour), 8, true)
	seedSlot(t, db, zoneA.ID, testNow.Add(-2*time.Hour), 8, true) // already started
	seedSlot(t, db, zoneA.ID, testNow.Add(4*time.Hour), 8, false) // deactivated

	out, err := repo.ListUpcoming(context.Background(), testNow, nil, nil)
	require.NoError(t, err)
	assert.Len(t, out, 3)

	out, err = repo.ListUpcoming(context.Background(), testNow, &zoneA.ID, nil)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	day := testNow.Add(24 * time.Hour)
	out, err = repo.ListUpcoming(context.Background(), testNow, &zoneA.ID, &day)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Slot.DatetimeFrom.After(day.Truncate(24*time.Hour)))
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleSlotRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
