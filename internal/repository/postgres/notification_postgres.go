package postgres

import (
	"context"
	"database/sql"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

const notificationColumns = `id, user_id, type, title, body, link, is_read, created_at`

func scanNotification(s scanner) (*model.Notification, error) {
	var n model.Notification
	if err := s.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a notification.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO notifications (id, user_id, type, title, body, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + notificationColumns
	return scanNotification(r.db.QueryRowContext(ctx, q, n.ID, n.UserID, n.Type, n.Title, n.Body, n.Link, n.IsRead, n.CreatedAt))
}

// List returns a user's notifications, newest first.
func (r *NotificationPostgres) List(ctx context.Context, f model.NotificationFilter) (*model.Page[model.Notification], error) {
	var w where
	w.add("user_id = ?", f.UserID)
	switch f.Read {
	case model.ReadFilterUnread:
		w.addRaw("is_read = false")
	case model.ReadFilterRead:
		w.addRaw("is_read = true")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(repository.PageQuery{Limit: f.Limit, Offset: f.Offset})
	rows, err := r.db.QueryContext(ctx, `SELECT `+notificationColumns+` FROM notifications`+w.String()+` ORDER BY created_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Notification]{Items: items, Total: total}, nil
}

// CountUnread counts a user's unread notifications.
func (r *NotificationPostgres) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&n)
	return n, err
}

// MarkRead flags one notification as read.
func (r *NotificationPostgres) MarkRead(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// MarkAllRead flags every unread notification of a user as read.
func (r *NotificationPostgres) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes one notification.
func (r *NotificationPostgres) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
