package repository

import (
	"context"

	"gorm.io/gorm"

	"jumparena/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, clientID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("client_id = ? AND is_read = ?", clientID, false).
		Update("is_read", true).Error
}
