package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/cache"
	"storeadmin/internal/model"
	repoMocks "storeadmin/internal/repository/mocks"
)

func TestNotificationService_UnreadCountIsCached(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockNotificationRepository)
	c := cache.NewMemory("test", time.Minute)
	svc := NewNotificationService(repo, c, time.Minute)

	repo.On("CountUnread", ctx, "u-1").Return(3, nil).Once()
	n, err := svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	repo.AssertNumberOfCalls(t, "CountUnread", 1)

	repo.On("MarkRead", ctx, "u-1", "n-1").Return(nil)
	require.NoError(t, svc.MarkRead(ctx, "u-1", "n-1"))

	repo.On("CountUnread", ctx, "u-1").Return(2, nil).Once()
	n, err = svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertNumberOfCalls(t, "CountUnread", 2)
}

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockNotificationRepository)
	svc := NewNotificationService(repo, nil, 0)

	repo.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == "u-1" && n.Type == model.NotificationSystem && n.Title == "Hello" && !n.IsRead
	})).Return(&model.Notification{ID: "n-1"}, nil)

	n, err := svc.Notify(ctx, "u-1", model.NotificationSystem, "Hello", "", "")
	require.NoError(t, err)
	assert.Equal(t, "n-1", n.ID)

	_, err = svc.Notify(ctx, "u-1", model.NotificationSystem, "", "", "")
	assert.ErrorContains(t, err, "title")

	_, err = svc.Notify(ctx, "", model.NotificationSystem, "Hello", "", "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to all and attaches the unread count", func(t *testing.T) {
		repo := new(repoMocks.MockNotificationRepository)
		svc := NewNotificationService(repo, nil, 0)
		repo.On("List", ctx, model.NotificationFilter{UserID: "u-1", Read: model.ReadFilterAll, Limit: 10}).
			Return(&model.Page[model.Notification]{Items: []model.Notification{{ID: "n-1"}}, Total: 1}, nil)
		repo.On("CountUnread", ctx, "u-1").Return(1, nil)

		res, err := svc.List(ctx, "u-1", "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, 1, res.Unread)
	})

	t.Run("unknown filter", func(t *testing.T) {
		repo := new(repoMocks.MockNotificationRepository)
		_, err := NewNotificationService(repo, nil, 0).List(ctx, "u-1", "archived", 0, 0)
		assert.ErrorContains(t, err, "filter")
	})

	t.Run("another user's notification is not found", func(t *testing.T) {
		repo := new(repoMocks.MockNotificationRepository)
		repo.On("Delete", ctx, "u-1", "n-2").Return(sql.ErrNoRows)
		err := NewNotificationService(repo, nil, 0).Delete(ctx, "u-1", "n-2")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
