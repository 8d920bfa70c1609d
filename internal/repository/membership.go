package repository

import (
	"context"
	"time"

	"storeadmin/internal/model"
)

// MembershipRepository defines data access for customer plans.
type MembershipRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Membership, error)
	// Upsert creates or replaces the user's membership.
	Upsert(ctx context.Context, m *model.Membership) (*model.Membership, error)
	List(ctx context.Context, f model.MembershipFilter) (*model.Page[model.Membership], error)
	// ExpireDue marks active memberships past their expiry as expired.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// PromotionRepository defines data access for discount codes.
type PromotionRepository interface {
	// Create inserts a promotion. A taken code yields ErrDuplicate.
	Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error)
	FindByID(ctx context.Context, id string) (*model.Promotion, error)
	FindByCode(ctx context.Context, code string) (*model.Promotion, error)
	List(ctx context.Context, activeOnly bool, pq PageQuery) (*model.Page[model.Promotion], error)
	Update(ctx context.Context, p *model.Promotion) (*model.Promotion, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	// DeactivateEnded clears is_active on promotions whose end has passed.
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
}
