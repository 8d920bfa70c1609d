package model

import "time"

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationOrder      NotificationType = "order"
	NotificationInvitation NotificationType = "invitation"
	NotificationReview     NotificationType = "review"
	NotificationSystem     NotificationType = "system"
)

// Notification is a message shown in a user's notification center.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// ReadFilter selects notifications by read state.
type ReadFilter string

const (
	ReadFilterAll    ReadFilter = "all"
	ReadFilterUnread ReadFilter = "unread"
	ReadFilterRead   ReadFilter = "read"
)

// NotificationFilter narrows notification listings for one user.
type NotificationFilter struct {
	UserID string
	Read   ReadFilter
	Limit  int
	Offset int
}
