package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// MockReviewService is a testify mock for service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, userID, productID string, in service.ReviewInput) (*model.Review, error) {
	args := m.Called(ctx, userID, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID string, viewerIsAdmin bool, limit, offset int) (*model.Page[model.Review], error) {
	args := m.Called(ctx, productID, viewerIsAdmin, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Review]), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actorID string, actorRole model.UserRole, id string) error {
	args := m.Called(ctx, actorID, actorRole, id)
	return args.Error(0)
}
