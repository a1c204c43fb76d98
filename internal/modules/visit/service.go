package visit

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jumparena/internal/domain"
)

// Service tracks physical attendance per booking, independent of payment
// state. Check-in and check-out are one-shot transitions:
// unopened -> checked-in -> checked-out.
type Service struct {
	db    *gorm.DB
	nowFn func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, nowFn: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

// CheckIn opens the visit for a booking, recording the timestamp, the
// optional actual headcount and who opened it. Repeating it fails.
func (s *Service) CheckIn(ctx context.Context, bookingID int64, actualParticipants *int, openedByID *int64) (*domain.Visit, error) {
	var v *domain.Visit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&domain.Booking{}, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing domain.Visit
		err := tx.Where("booking_id = ?", bookingID).First(&existing).Error
		switch {
		case err == nil:
			if existing.CheckinAt != nil {
				return ErrAlreadyCheckedIn
			}
			v = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			v = &domain.Visit{BookingID: bookingID}
			if err := tx.Create(v).Error; err != nil {
				return err
			}
		default:
			return err
		}

		now := s.nowFn().UTC()
		v.CheckinAt = &now
		v.ActualParticipants = actualParticipants
		v.OpenedByID = openedByID
		return tx.Model(&domain.Visit{}).Where("id = ?", v.ID).
			Updates(map[string]any{
				"checkin_at":                v.CheckinAt,
				"actual_participants_count": v.ActualParticipants,
				"opened_by_id":              v.OpenedByID,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CheckOut closes the visit. It fails without a prior check-in and cannot be
// repeated. A supplied headcount overwrites the one recorded at check-in.
func (s *Service) CheckOut(ctx context.Context, bookingID int64, actualParticipants *int, closedByID *int64) (*domain.Visit, error) {
	var v *domain.Visit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Visit
		err := tx.Where("booking_id = ?", bookingID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCheckedIn
			}
			return err
		}
		if existing.CheckinAt == nil {
			return ErrNotCheckedIn
		}
		if existing.CheckoutAt != nil {
			return ErrAlreadyCheckedOut
		}

		now := s.nowFn().UTC()
		existing.CheckoutAt = &now
		if actualParticipants != nil {
			existing.ActualParticipants = actualParticipants
		}
		existing.ClosedByID = closedByID
		v = &existing
		return tx.Model(&domain.Visit{}).Where("id = ?", existing.ID).
			Updates(map[string]any{
				"checkout_at":               existing.CheckoutAt,
				"actual_participants_count": existing.ActualParticipants,
				"closed_by_id":              existing.ClosedByID,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns the visit record of a booking, or nil when it was never opened.
func (s *Service) Get(ctx context.Context, bookingID int64) (*domain.Visit, error) {
	var v domain.Visit
	err := s.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
