package repository

import (
	"context"

	"storeadmin/internal/model"
)

// NotificationRepository defines data access for the notification center.
// Every user-facing method is scoped to the owning user.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	List(ctx context.Context, f model.NotificationFilter) (*model.Page[model.Notification], error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}
