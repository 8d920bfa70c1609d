package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
)

// MockDashboardService is a testify mock for service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Statistics(ctx context.Context) (*model.DashboardStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStatistics), args.Error(1)
}

func (m *MockDashboardService) MonthlyRevenue(ctx context.Context, months int) ([]model.MonthlyRevenue, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MonthlyRevenue), args.Error(1)
}

func (m *MockDashboardService) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockDashboardService) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopProduct), args.Error(1)
}

func (m *MockDashboardService) OrderStatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusCount), args.Error(1)
}

func (m *MockDashboardService) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
