package payment

import "context"

type NotificationSender interface {
	Notify(ctx context.Context, clientID int64, message string) error
}
