package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"jumparena/internal/domain"
	"jumparena/internal/pkg/money"
)

// Service is the payment ledger. Payments only accumulate against a booking;
// paid and due are derived on read. Overpayment is allowed and simply leaves
// due at zero.
type Service struct {
	db     *gorm.DB
	notifs NotificationSender
}

func NewService(db *gorm.DB, notifs NotificationSender) *Service {
	return &Service{db: db, notifs: notifs}
}

// Add records a payment against a booking. The first payment moves the
// booking from new to confirmed; for already confirmed or done bookings the
// status is left alone.
func (s *Service) Add(ctx context.Context, bookingID int64, amount decimal.Decimal, method, comment string, employeeID *int64) (*domain.Payment, error) {
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return nil, ErrValidation
	}

	var p *domain.Payment
	var clientID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		clientID = b.ClientID

		p = &domain.Payment{
			BookingID:  bookingID,
			Amount:     amount,
			Method:     domain.PaymentMethod(method),
			Comment:    comment,
			EmployeeID: employeeID,
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if b.Status == domain.BookingNew {
			return tx.Model(&domain.Booking{}).Where("id = ?", bookingID).
				Update("status", domain.BookingConfirmed).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, clientID, fmt.Sprintf("Payment for booking #%d accepted. Booking confirmed.", bookingID))
	return p, nil
}

// PayDue records one payment covering the full outstanding amount, for the
// client self-service flow. Rejected when nothing is due.
func (s *Service) PayDue(ctx context.Context, bookingID, clientID int64, method string) (*domain.Payment, error) {
	var p *domain.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		err := tx.Where("id = ? AND client_id = ?", bookingID, clientID).First(&b).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		totals, err := totalsIn(tx, &b)
		if err != nil {
			return err
		}
		if !totals.Due.IsPositive() {
			return ErrNothingDue
		}

		p = &domain.Payment{
			BookingID: bookingID,
			Amount:    totals.Due,
			Method:    domain.PaymentMethod(method),
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if b.Status == domain.BookingNew {
			return tx.Model(&domain.Booking{}).Where("id = ?", bookingID).
				Update("status", domain.BookingConfirmed).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, clientID, fmt.Sprintf("Payment for booking #%d accepted. Booking confirmed.", bookingID))
	return p, nil
}

// Totals reports total, paid = Σ amount and due = max(total − paid, 0).
func (s *Service) Totals(ctx context.Context, bookingID int64) (*Totals, error) {
	var b domain.Booking
	if err := s.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return totalsIn(s.db.WithContext(ctx), &b)
}

// List returns the payments of a booking, newest first.
func (s *Service) List(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id DESC").
		Find(&payments).Error
	return payments, err
}

func totalsIn(tx *gorm.DB, b *domain.Booking) (*Totals, error) {
	var payments []domain.Payment
	if err := tx.Where("booking_id = ?", b.ID).Find(&payments).Error; err != nil {
		return nil, err
	}

	paid := money.Zero()
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	due := b.TotalSum.Sub(paid)
	if due.IsNegative() {
		due = money.Zero()
	}

	return &Totals{
		Total: money.Round(b.TotalSum),
		Paid:  money.Round(paid),
		Due:   money.Round(due),
	}, nil
}

func (s *Service) notify(ctx context.Context, clientID int64, message string) {
	if s.notifs == nil {
		return
	}
	_ = s.notifs.Notify(ctx, clientID, message)
}
