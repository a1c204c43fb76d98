package subscription

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jumparena/internal/domain"
)

const (
	defaultVisits       = 5
	defaultDurationDays = 30
)

type NotificationSender interface {
	Notify(ctx context.Context, clientID int64, message string) error
}

// Service manages subscription purchase and listing. Redemption against a
// booking lives in the booking engine, inside the booking-creation
// transaction.
type Service struct {
	db     *gorm.DB
	notifs NotificationSender
	nowFn  func() time.Time
}

func NewService(db *gorm.DB, notifs NotificationSender) *Service {
	return &Service{db: db, notifs: notifs, nowFn: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

// Purchase creates an active subscription starting today. Payments for
// subscriptions themselves are recorded out of band.
func (s *Service) Purchase(ctx context.Context, clientID int64, req PurchaseRequest) (*domain.Subscription, error) {
	visits := req.Visits
	if visits <= 0 {
		visits = defaultVisits
	}
	days := req.DurationDays
	if days <= 0 {
		days = defaultDurationDays
	}

	start := s.nowFn().UTC().Truncate(24 * time.Hour)
	sub := &domain.Subscription{
		ClientID:        clientID,
		ServiceID:       req.ServiceID,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, days),
		TotalVisits:     visits,
		RemainingVisits: visits,
		Status:          domain.SubscriptionActive,
	}
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.Notify(ctx, clientID, "Subscription activated. Keep an eye on your remaining visits.")
	}
	return sub, nil
}

// ListByClient returns all of a client's subscriptions, soonest-expiring last.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("end_date DESC").
		Find(&subs).Error
	return subs, err
}

// ListRedeemable returns the client's subscriptions that can still pay for a
// booking: visits remain and the end date has not passed.
func (s *Service) ListRedeemable(ctx context.Context, clientID int64) ([]domain.Subscription, error) {
	today := s.nowFn().UTC().Truncate(24 * time.Hour)
	var subs []domain.Subscription
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ? AND remaining_visits > 0 AND end_date >= ?", clientID, today).
		Order("end_date ASC").
		Find(&subs).Error
	return subs, err
}

// Get returns one subscription, scoped to its owner.
func (s *Service) Get(ctx context.Context, id, clientID int64) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}
