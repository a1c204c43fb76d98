package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jumparena/internal/database"
	"jumparena/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))

	svc := NewService(db, nil).WithClock(func() time.Time { return testNow })
	return svc, db
}

func seedClient(t *testing.T, db *gorm.DB) *domain.Client {
	t.Helper()
	c := &domain.Client{FullName: "Aliya Nurpeisova", Status: domain.ClientActive}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestPurchase_Defaults(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db)

	sub, err := svc.Purchase(context.Background(), client.ID, PurchaseRequest{})
	require.NoError(t, err)

	assert.Equal(t, 5, sub.TotalVisits)
	assert.Equal(t, 5, sub.RemainingVisits)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)

	start := testNow.Truncate(24 * time.Hour)
	assert.True(t, sub.StartDate.Equal(start))
	assert.True(t, sub.EndDate.Equal(start.AddDate(0, 0, 30)))
}

func TestPurchase_Explicit(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db)

	sub, err := svc.Purchase(context.Background(), client.ID, PurchaseRequest{Visits: 12, DurationDays: 90})
	require.NoError(t, err)

	assert.Equal(t, 12, sub.TotalVisits)
	start := testNow.Truncate(24 * time.Hour)
	assert.True(t, sub.EndDate.Equal(start.AddDate(0, 0, 90)))
}

func TestListRedeemable(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db)
	start := testNow.Truncate(24 * time.Hour)

	usable := &domain.Subscription{
		ClientID:        client.ID,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 10),
		TotalVisits:     5,
		RemainingVisits: 2,
		Status:          domain.SubscriptionActive,
	}
	expired := &domain.Subscription{
		ClientID:        client.ID,
		StartDate:       start.AddDate(0, -2, 0),
		EndDate:         start.AddDate(0, -1, 0),
		TotalVisits:     5,
		RemainingVisits: 5,
		Status:          domain.SubscriptionActive,
	}
	empty := &domain.Subscription{
		ClientID:        client.ID,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 10),
		TotalVisits:     5,
		RemainingVisits: 0,
		Status:          domain.SubscriptionActive,
	}
	for _, sub := range []*domain.Subscription{usable, expired, empty} {
		require.NoError(t, db.Create(sub).Error)
	}

	subs, err := svc.ListRedeemable(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, usable.ID, subs[0].ID)

	// ends today still counts
	today := &domain.Subscription{
		ClientID:        client.ID,
		StartDate:       start.AddDate(0, 0, -30),
		EndDate:         start,
		TotalVisits:     5,
		RemainingVisits: 1,
		Status:          domain.SubscriptionActive,
	}
	require.NoError(t, db.Create(today).Error)

	subs, err = svc.ListRedeemable(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestGet_ScopedToOwner(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db)
	stranger := seedClient(t, db)

	sub, err := svc.Purchase(context.Background(), client.ID, PurchaseRequest{})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), sub.ID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = svc.Get(context.Background(), sub.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
