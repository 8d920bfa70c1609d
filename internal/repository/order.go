package repository

import (
	"context"
	"time"

	"storeadmin/internal/model"
)

// OrderRepository defines data access for orders and their items.
type OrderRepository interface {
	// Create stores the order and its items, decrements stock for every item and,
	// when promotionID is set, consumes one promotion use. All writes share one
	// transaction: ErrInsufficientStock or ErrPromotionExhausted leave nothing behind.
	Create(ctx context.Context, o *model.Order, promotionID string) (*model.Order, error)

	// FindByID returns the order with its items.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	// List returns a page of orders without items, newest first.
	List(ctx context.Context, f model.OrderFilter) (*model.Page[model.Order], error)

	// UpdateStatus moves the order from one status to another. If the stored status
	// is no longer from, ErrConflict is returned. Moving to cancelled restores stock.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error)
}

// StatsRepository runs the aggregate queries behind the dashboard.
// Cancelled orders never count as revenue.
type StatsRepository interface {
	// Revenue returns booked revenue and order count for orders created in p.
	Revenue(ctx context.Context, p model.Period) (cents int64, orders int64, err error)
	NewCustomers(ctx context.Context, p model.Period) (int64, error)
	NewProducts(ctx context.Context, p model.Period) (int64, error)
	Totals(ctx context.Context) (revenueCents int64, orders int64, err error)
	// MonthlyRevenue returns months that had orders since the given time, keyed YYYY-MM.
	MonthlyRevenue(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error)
	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
	StatusBreakdown(ctx context.Context) ([]model.StatusCount, error)
}
