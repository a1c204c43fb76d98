package booking

import "context"

// NotificationSender delivers a fire-and-forget message to a client. Failures
// are logged by the implementation and never fail the booking operation.
type NotificationSender interface {
	Notify(ctx context.Context, clientID int64, message string) error
}
