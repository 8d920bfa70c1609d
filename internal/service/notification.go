package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/cache"
	"storeadmin/internal/logger"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

// NotificationList is a page of notifications with the user's unread count.
type NotificationList struct {
	Items  []model.Notification `json:"data"`
	Total  int                  `json:"total"`
	Unread int                  `json:"unread"`
}

// NotificationService is the per-user notification center.
// Every operation is scoped to userID; other users' notifications are reported as not found.
type NotificationService interface {
	Notify(ctx context.Context, userID string, typ model.NotificationType, title, body, link string) (*model.Notification, error)
	List(ctx context.Context, userID string, read model.ReadFilter, limit, offset int) (*NotificationList, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	cache     cache.Client
	unreadTTL time.Duration
	now       clock
}

func NewNotificationService(repo repository.NotificationRepository, c cache.Client, unreadTTL time.Duration) NotificationService {
	return &notificationService{repo: repo, cache: c, unreadTTL: unreadTTL, now: utcNow}
}

func unreadKey(userID string) string { return "notifications:unread:" + userID }

func (s *notificationService) Notify(ctx context.Context, userID string, typ model.NotificationType, title, body, link string) (*model.Notification, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	if title == "" {
		return nil, validate.Field("title", "is required")
	}
	n, err := s.repo.Create(ctx, &model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		Link:      link,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID string, read model.ReadFilter, limit, offset int) (*NotificationList, error) {
	switch read {
	case "":
		read = model.ReadFilterAll
	case model.ReadFilterAll, model.ReadFilterUnread, model.ReadFilterRead:
	default:
		return nil, validate.Field("filter", "must be one of: all, unread, read")
	}
	pq := page(limit, offset)
	res, err := s.repo.List(ctx, model.NotificationFilter{UserID: userID, Read: read, Limit: pq.Limit, Offset: pq.Offset})
	if err != nil {
		return nil, err
	}
	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Items: res.Items, Total: res.Total, Unread: unread}, nil
}

// UnreadCount is served from the cache when possible.
func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	key := unreadKey(userID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			if n, convErr := strconv.Atoi(raw); convErr == nil {
				return n, nil
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			logger.From(ctx).Warn("unread count cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.Itoa(n), s.unreadTTL); err != nil {
			logger.From(ctx).Warn("unread count cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, userID)
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, unreadKey(userID)); err != nil {
		logger.From(ctx).Warn("unread count cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
