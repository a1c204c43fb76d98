package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jumparena/internal/domain"
)

type ScheduleSlotRepository struct {
	db *gorm.DB
}

func NewScheduleSlotRepository(db *gorm.DB) *ScheduleSlotRepository {
	return &ScheduleSlotRepository{db: db}
}

// SlotAvailability is a schedule slot with its derived seat accounting.
type SlotAvailability struct {
	Slot      domain.ScheduleSlot `json:"slot"`
	Booked    int                 `json:"booked"`
	FreeSeats int                 `json:"free_seats"`
}

func (r *ScheduleSlotRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error) {
	var s domain.ScheduleSlot
	err := r.db.WithContext(ctx).
		Preload("Zone").
		Preload("Employee").
		First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListUpcoming returns active slots starting at or after `from`, optionally
// filtered by zone and day, each with booked seats summed over non-cancelled
// bookings and free seats floored at zero.
func (r *ScheduleSlotRepository) ListUpcoming(ctx context.Context, from time.Time, zoneID *int64, day *time.Time) ([]SlotAvailability, error) {
	q := r.db.WithContext(ctx).
		Preload("Zone").
		Preload("Employee").
		Where("is_active = ? AND datetime_from >= ?", true, from)
	if zoneID != nil {
		q = q.Where("zone_id = ?", *zoneID)
	}
	if day != nil {
		start := day.Truncate(24 * time.Hour)
		q = q.Where("datetime_from >= ? AND datetime_from < ?", start, start.Add(24*time.Hour))
	}

	var slots []domain.ScheduleSlot
	if err := q.Order("datetime_from").Find(&slots).Error; err != nil {
		return nil, err
	}

	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked, err := r.BookedSeats(ctx, slot.ID)
		if err != nil {
			return nil, err
		}
		free := slot.Capacity - booked
		if free < 0 {
			free = 0
		}
		out = append(out, SlotAvailability{Slot: slot, Booked: booked, FreeSeats: free})
	}
	return out, nil
}

// BookedSeats sums participants across non-cancelled bookings on the slot.
func (r *ScheduleSlotRepository) BookedSeats(ctx context.Context, slotID int64) (int, error) {
	var booked int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("schedule_slot_id = ? AND status <> ?", slotID, domain.BookingCancelled).
		Select("COALESCE(SUM(participants_count), 0)").
		Scan(&booked).Error
	return int(booked), err
}
