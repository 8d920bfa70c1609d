package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// MockMembershipService is a testify mock for service.MembershipService.
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) Get(ctx context.Context, userID string) (*model.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipService) Subscribe(ctx context.Context, userID string, in service.SubscribeInput) (*model.Membership, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipService) Cancel(ctx context.Context, userID string) (*model.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipService) List(ctx context.Context, f model.MembershipFilter) (*model.Page[model.Membership], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Membership]), args.Error(1)
}

func (m *MockMembershipService) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
