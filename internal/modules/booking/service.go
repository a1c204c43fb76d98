package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jumparena/internal/database"
	"jumparena/internal/domain"
	"jumparena/internal/pkg/money"
)

// Service is the booking lifecycle engine: creation with availability
// validation, the service-line ledger, total reconciliation and subscription
// redemption. Every mutation runs as one transaction so the availability
// check and the insert observe the same state.
type Service struct {
	db     *gorm.DB
	notifs NotificationSender
	nowFn  func() time.Time
}

func NewService(db *gorm.DB, notifs NotificationSender) *Service {
	return &Service{
		db:     db,
		notifs: notifs,
		nowFn:  time.Now,
	}
}

// WithClock replaces the time source. Tests use it to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

// forUpdate adds a row lock on PostgreSQL. SQLite serializes writers itself
// and rejects FOR UPDATE syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if database.IsPostgres(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateZoneBooking books a zone directly for a time range (staff path).
// The candidate window is rejected when it overlaps any non-cancelled booking
// on the same zone; windows that merely touch at an endpoint pass.
func (s *Service) CreateZoneBooking(ctx context.Context, req CreateZoneBookingRequest) (*domain.Booking, error) {
	if !req.DatetimeTo.After(req.DatetimeFrom) {
		return nil, ErrValidation
	}

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone domain.Zone
		if err := forUpdate(tx).First(&zone, req.ZoneID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.Participants <= 0 || req.Participants > zone.Capacity {
			return ErrValidation
		}

		var overlap int64
		err := tx.Model(&domain.Booking{}).
			Where("zone_id = ? AND status <> ? AND datetime_from < ? AND datetime_to > ?",
				req.ZoneID, domain.BookingCancelled, req.DatetimeTo, req.DatetimeFrom).
			Count(&overlap).Error
		if err != nil {
			return err
		}
		if overlap > 0 {
			return ErrZoneOverlap
		}

		hours := decimal.NewFromInt(int64(req.DatetimeTo.Sub(req.DatetimeFrom) / time.Second)).
			Div(decimal.NewFromInt(3600))
		sessionSum := money.Round(zone.BasePrice.Mul(hours))

		b = &domain.Booking{
			ClientID:     req.ClientID,
			ZoneID:       req.ZoneID,
			DatetimeFrom: req.DatetimeFrom,
			DatetimeTo:   req.DatetimeTo,
			Participants: req.Participants,
			SessionSum:   sessionSum,
			Status:       domain.BookingNew,
		}
		if err := tx.Create(b).Error; err != nil {
			return translateConstraint(err)
		}
		return s.recalcTotal(tx, b)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, b.ClientID, fmt.Sprintf("Booking #%d created and awaiting payment.", b.ID))
	return b, nil
}

// CreateSlotBooking books seats on a schedule slot (client path). Capacity
// governs availability: the sum of participants across non-cancelled bookings
// on the slot may not exceed the slot capacity. An optional subscription pays
// the session charge; optional service lines are added in the same
// transaction.
func (s *Service) CreateSlotBooking(ctx context.Context, req CreateSlotBookingRequest) (*domain.Booking, error) {
	if req.Participants <= 0 {
		return nil, ErrValidation
	}

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot domain.ScheduleSlot
		if err := forUpdate(tx).First(&slot, req.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !slot.IsActive {
			return ErrValidation
		}

		var booked int64
		err := tx.Model(&domain.Booking{}).
			Where("schedule_slot_id = ? AND status <> ?", req.SlotID, domain.BookingCancelled).
			Select("COALESCE(SUM(participants_count), 0)").
			Scan(&booked).Error
		if err != nil {
			return err
		}
		if booked+int64(req.Participants) > int64(slot.Capacity) {
			return ErrNoCapacity
		}

		sessionSum := money.MulQty(slot.Price, req.Participants)

		var subID *int64
		if req.SubscriptionID != nil {
			sub, err := s.redeem(tx, *req.SubscriptionID, req.ClientID, req.Participants)
			if err != nil {
				return err
			}
			subID = &sub.ID
			sessionSum = money.Zero()
		}

		slotID := slot.ID
		b = &domain.Booking{
			ClientID:       req.ClientID,
			ZoneID:         slot.ZoneID,
			ScheduleSlotID: &slotID,
			SubscriptionID: subID,
			DatetimeFrom:   slot.DatetimeFrom,
			DatetimeTo:     slot.DatetimeTo,
			Participants:   req.Participants,
			SessionSum:     sessionSum,
			Status:         domain.BookingNew,
		}
		if err := tx.Create(b).Error; err != nil {
			return translateConstraint(err)
		}

		for _, line := range req.Services {
			if line.Qty <= 0 {
				continue
			}
			if err := s.upsertLine(tx, b.ID, line.ServiceID, line.Qty, nil); err != nil {
				return err
			}
		}
		return s.recalcTotal(tx, b)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, b.ClientID, fmt.Sprintf("Booking #%d created and awaiting payment.", b.ID))
	return b, nil
}

// redeem debits remaining visits from the client's subscription and must run
// inside the booking-creation transaction: on failure nothing commits.
func (s *Service) redeem(tx *gorm.DB, subscriptionID, clientID int64, participants int) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := forUpdate(tx).
		Where("id = ? AND client_id = ?", subscriptionID, clientID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	today := s.nowFn().UTC().Truncate(24 * time.Hour)
	if sub.RemainingVisits < participants || sub.EndDate.Before(today) {
		return nil, ErrNoCredit
	}

	sub.RemainingVisits -= participants
	if err := tx.Model(&domain.Subscription{}).Where("id = ?", sub.ID).
		Update("remaining_visits", sub.RemainingVisits).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// AddService attaches qty units of a catalog service to a booking. A line for
// (booking, service) is unique: re-adding accumulates qty and refreshes the
// stored unit price to the latest one (last write wins).
func (s *Service) AddService(ctx context.Context, bookingID, serviceID int64, qty int, unitPrice *decimal.Decimal) error {
	if qty <= 0 {
		return ErrValidation
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if err := s.upsertLine(tx, b.ID, serviceID, qty, unitPrice); err != nil {
			return err
		}
		return s.recalcTotal(tx, b)
	})
}

func (s *Service) upsertLine(tx *gorm.DB, bookingID, serviceID int64, qty int, unitPrice *decimal.Decimal) error {
	var svc domain.Service
	if err := tx.First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	price := money.Round(svc.BasePrice)
	if unitPrice != nil {
		price = money.Round(*unitPrice)
	}

	var line domain.BookingService
	err := tx.Where("booking_id = ? AND service_id = ?", bookingID, serviceID).First(&line).Error
	switch {
	case err == nil:
		line.Qty += qty
		line.UnitPrice = price
		line.LineSum = money.MulQty(price, line.Qty)
		return tx.Model(&domain.BookingService{}).
			Where("booking_id = ? AND service_id = ?", bookingID, serviceID).
			Updates(map[string]any{
				"qty":        line.Qty,
				"unit_price": line.UnitPrice,
				"line_sum":   line.LineSum,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = domain.BookingService{
			BookingID: bookingID,
			ServiceID: serviceID,
			Qty:       qty,
			UnitPrice: price,
			LineSum:   money.MulQty(price, qty),
		}
		return tx.Create(&line).Error
	default:
		return err
	}
}

// RemoveService deletes the whole (booking, service) line; there is no
// partial-quantity removal.
func (s *Service) RemoveService(ctx context.Context, bookingID, serviceID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, bookingID)
		if err != nil {
			return err
		}
		res := tx.Where("booking_id = ? AND service_id = ?", bookingID, serviceID).
			Delete(&domain.BookingService{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return s.recalcTotal(tx, b)
	})
}

// recalcTotal restores the invariant total = session + Σ line_sum. It is the
// only writer of total_sum; the stored value is never trusted across
// mutations.
func (s *Service) recalcTotal(tx *gorm.DB, b *domain.Booking) error {
	var lines []domain.BookingService
	if err := tx.Where("booking_id = ?", b.ID).Find(&lines).Error; err != nil {
		return err
	}

	total := b.SessionSum
	for _, ln := range lines {
		total = total.Add(ln.LineSum)
	}
	b.TotalSum = money.Round(total)

	return tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
		Update("total_sum", b.TotalSum).Error
}

// GetDetails assembles the booking aggregate: lines joined with catalog
// services, payments, visit, paid/due and the derived attendance state.
func (s *Service) GetDetails(ctx context.Context, bookingID int64) (*Details, error) {
	var b domain.Booking
	err := s.db.WithContext(ctx).
		Preload("Zone").
		Preload("Services.Service").
		Preload("Payments").
		Preload("Visit").
		First(&b, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	paid := money.Zero()
	for _, p := range b.Payments {
		paid = paid.Add(p.Amount)
	}
	due := b.TotalSum.Sub(paid)
	if due.IsNegative() {
		due = money.Zero()
	}

	return &Details{
		Booking:     &b,
		Paid:        money.Round(paid),
		Due:         money.Round(due),
		VisitStatus: deriveVisitStatus(&b, s.nowFn()),
	}, nil
}

// ListByClient returns a client's bookings, newest window first, with the
// derived paid amount and attendance state per booking.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]Details, error) {
	var bookings []domain.Booking
	err := s.db.WithContext(ctx).
		Preload("Zone").
		Preload("Payments").
		Preload("Visit").
		Where("client_id = ?", clientID).
		Order("datetime_from DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	out := make([]Details, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		paid := money.Zero()
		for _, p := range b.Payments {
			paid = paid.Add(p.Amount)
		}
		due := b.TotalSum.Sub(paid)
		if due.IsNegative() {
			due = money.Zero()
		}
		out = append(out, Details{
			Booking:     b,
			Paid:        money.Round(paid),
			Due:         money.Round(due),
			VisitStatus: deriveVisitStatus(b, now),
		})
	}
	return out, nil
}

// UpdateStatus sets the booking status by code. Cancelling frees the window
// and the slot seats implicitly: availability ignores cancelled bookings.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	switch domain.BookingStatus(status) {
	case domain.BookingNew, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingDone:
	default:
		return ErrValidation
	}

	res := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking and everything it owns. The cascade to lines,
// payments and the visit record is explicit and transactional.
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getBooking(tx, bookingID); err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", bookingID).Delete(&domain.BookingService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", bookingID).Delete(&domain.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", bookingID).Delete(&domain.Visit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Booking{}, bookingID).Error
	})
}

func (s *Service) notify(ctx context.Context, clientID int64, message string) {
	if s.notifs == nil {
		return
	}
	_ = s.notifs.Notify(ctx, clientID, message)
}

func getBooking(tx *gorm.DB, bookingID int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := tx.First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// deriveVisitStatus computes the display attendance state; it is never
// persisted.
func deriveVisitStatus(b *domain.Booking, now time.Time) domain.VisitStatus {
	switch {
	case b.Status == domain.BookingCancelled:
		return domain.VisitCancelled
	case b.Visit != nil && b.Visit.CheckoutAt != nil:
		return domain.VisitCompleted
	case b.DatetimeTo.Before(now):
		return domain.VisitNoShow
	default:
		return domain.VisitScheduled
	}
}

// translateConstraint maps the PostgreSQL exclusion-constraint backstop
// (two writers racing past the in-transaction overlap check) to the overlap
// error.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_zone_overlap" {
		return ErrZoneOverlap
	}
	return err
}
