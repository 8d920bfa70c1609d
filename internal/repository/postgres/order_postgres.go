package postgres

import (
	"context"
	"database/sql"
	"errors"

	"storeadmin/internal/database"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

const orderColumns = `id, user_id, status, subtotal_cents, discount_cents, total_cents, promotion_code, shipping_address, created_at, updated_at`

func scanOrder(s scanner) (*model.Order, error) {
	var o model.Order
	if err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.SubtotalCents,
		&o.DiscountCents,
		&o.TotalCents,
		&o.PromotionCode,
		&o.ShippingAddress,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create stores an order in a single transaction. Items are processed in the
// order given, so callers should sort them by product ID to keep lock order stable.
func (r *OrderPostgres) Create(ctx context.Context, o *model.Order, promotionID string) (*model.Order, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, it := range o.Items {
			const qStock = `
				UPDATE products SET stock = stock - $2, updated_at = now()
				WHERE id = $1 AND stock >= $2 AND is_archived = false`
			res, err := tx.ExecContext(ctx, qStock, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if err := expectAffected(res); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return repository.ErrInsufficientStock
				}
				return err
			}
		}

		if promotionID != "" {
			const qPromo = `
				UPDATE promotions SET used_count = used_count + 1
				WHERE id = $1 AND (max_uses = 0 OR used_count < max_uses)`
			res, err := tx.ExecContext(ctx, qPromo, promotionID)
			if err != nil {
				return err
			}
			if err := expectAffected(res); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return repository.ErrPromotionExhausted
				}
				return err
			}
		}

		const qOrder = `
			INSERT INTO orders (id, user_id, status, subtotal_cents, discount_cents, total_cents, promotion_code, shipping_address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
		if _, err := tx.ExecContext(ctx, qOrder,
			o.ID, o.UserID, o.Status, o.SubtotalCents, o.DiscountCents, o.TotalCents, o.PromotionCode, o.ShippingAddress, o.CreatedAt,
		); err != nil {
			return mapError(err)
		}

		const qItem = `
			INSERT INTO order_items (id, order_id, product_id, product_name, unit_price_cents, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`
		for _, it := range o.Items {
			if _, err := tx.ExecContext(ctx, qItem, it.ID, o.ID, it.ProductID, it.ProductName, it.UnitPriceCents, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, o.ID)
}

// FindByID fetches an order with its items.
func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	const qItems = `
		SELECT id, order_id, product_id, product_name, unit_price_cents, quantity
		FROM order_items WHERE order_id = $1 ORDER BY product_name ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, qItems, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Items = make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPriceCents, &it.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns orders matching the filter, newest first. Items are not loaded.
func (r *OrderPostgres) List(ctx context.Context, f model.OrderFilter) (*model.Page[model.Order], error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(repository.PageQuery{Limit: f.Limit, Offset: f.Offset})
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders`+w.String()+` ORDER BY created_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Order]{Items: items, Total: total}, nil
}

// UpdateStatus performs a compare-and-set on the order status.
func (r *OrderPostgres) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`, id, from, to)
		if err != nil {
			return err
		}
		if err := expectAffected(res); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			var exists bool
			if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return sql.ErrNoRows
			}
			return repository.ErrConflict
		}

		if to == model.OrderStatusCancelled {
			const qRestore = `
				UPDATE products p SET stock = p.stock + oi.quantity, updated_at = now()
				FROM order_items oi
				WHERE oi.order_id = $1 AND p.id = oi.product_id`
			if _, err := tx.ExecContext(ctx, qRestore, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
