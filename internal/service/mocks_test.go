package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
)

// The mocks package imports service, so services that depend on other
// services are tested against these in-package doubles.

type mockNotifications struct {
	mock.Mock
}

func (m *mockNotifications) Notify(ctx context.Context, userID string, typ model.NotificationType, title, body, link string) (*model.Notification, error) {
	args := m.Called(ctx, userID, typ, title, body, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *mockNotifications) List(ctx context.Context, userID string, read model.ReadFilter, limit, offset int) (*NotificationList, error) {
	args := m.Called(ctx, userID, read, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NotificationList), args.Error(1)
}

func (m *mockNotifications) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotifications) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNotifications) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifications) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) Statistics(ctx context.Context) (*model.DashboardStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStatistics), args.Error(1)
}

func (m *mockDashboard) MonthlyRevenue(ctx context.Context, months int) ([]model.MonthlyRevenue, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MonthlyRevenue), args.Error(1)
}

func (m *mockDashboard) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *mockDashboard) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopProduct), args.Error(1)
}

func (m *mockDashboard) OrderStatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusCount), args.Error(1)
}

func (m *mockDashboard) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
