package notification

import (
	"context"

	"jumparena/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByClient(ctx context.Context, clientID int64) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, clientID int64) error
}

type Service struct {
	repo notificationRepo
	hub  *Hub
}

func NewService(repo notificationRepo, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// Notify persists the notification and pushes it to the client's live
// connection when one is open. Delivery failures are not errors; the stored
// row is the source of truth.
func (s *Service) Notify(ctx context.Context, clientID int64, message string) error {
	n := &domain.Notification{
		ClientID: clientID,
		Message:  message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Push(clientID, n)
	}
	return nil
}

func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]domain.Notification, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) MarkAllRead(ctx context.Context, clientID int64) error {
	return s.repo.MarkAllRead(ctx, clientID)
}
