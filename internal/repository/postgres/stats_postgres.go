package postgres

import (
	"context"
	"database/sql"
	"time"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// StatsPostgres is a PostgreSQL implementation of repository.StatsRepository.
type StatsPostgres struct {
	db *sql.DB
}

// NewStatsPostgres creates a new StatsPostgres repository.
func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

var _ repository.StatsRepository = (*StatsPostgres)(nil)

// Revenue sums order totals created within p.
func (r *StatsPostgres) Revenue(ctx context.Context, p model.Period) (int64, int64, error) {
	const q = `
		SELECT COALESCE(SUM(total_cents), 0), COUNT(*)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2`
	var cents, orders int64
	if err := r.db.QueryRowContext(ctx, q, p.From, p.To).Scan(&cents, &orders); err != nil {
		return 0, 0, err
	}
	return cents, orders, nil
}

// NewCustomers counts customer accounts created within p.
func (r *StatsPostgres) NewCustomers(ctx context.Context, p model.Period) (int64, error) {
	const q = `SELECT COUNT(*) FROM users WHERE role = 'customer' AND created_at >= $1 AND created_at < $2`
	var n int64
	err := r.db.QueryRowContext(ctx, q, p.From, p.To).Scan(&n)
	return n, err
}

// NewProducts counts products created within p.
func (r *StatsPostgres) NewProducts(ctx context.Context, p model.Period) (int64, error) {
	const q = `SELECT COUNT(*) FROM products WHERE created_at >= $1 AND created_at < $2`
	var n int64
	err := r.db.QueryRowContext(ctx, q, p.From, p.To).Scan(&n)
	return n, err
}

// Totals returns lifetime revenue and order count.
func (r *StatsPostgres) Totals(ctx context.Context) (int64, int64, error) {
	const q = `SELECT COALESCE(SUM(total_cents), 0), COUNT(*) FROM orders WHERE status <> 'cancelled'`
	var cents, orders int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&cents, &orders); err != nil {
		return 0, 0, err
	}
	return cents, orders, nil
}

// MonthlyRevenue groups revenue by calendar month (UTC) from since onwards.
func (r *StatsPostgres) MonthlyRevenue(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error) {
	const q = `
		SELECT to_char(date_trunc('month', created_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
		       COALESCE(SUM(total_cents), 0), COUNT(*)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= $1
		GROUP BY month
		ORDER BY month ASC`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MonthlyRevenue, 0)
	for rows.Next() {
		var m model.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenueCents, &m.Orders); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecentOrders returns the latest orders without items.
func (r *StatsPostgres) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Order, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// TopProducts ranks products by units sold in non-cancelled orders.
func (r *StatsPostgres) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	const q = `
		SELECT oi.product_id, p.name, SUM(oi.quantity)::bigint, SUM(oi.quantity * oi.unit_price_cents)::bigint
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status <> 'cancelled'
		GROUP BY oi.product_id, p.name
		ORDER BY 3 DESC, 4 DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TopProduct, 0, limit)
	for rows.Next() {
		var tp model.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.UnitsSold, &tp.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// StatusBreakdown counts orders per status.
func (r *StatsPostgres) StatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.StatusCount, 0)
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
