package postgres

import (
	"context"
	"database/sql"
	"time"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// PromotionPostgres is a PostgreSQL implementation of repository.PromotionRepository.
type PromotionPostgres struct {
	db *sql.DB
}

// NewPromotionPostgres creates a new PromotionPostgres repository.
func NewPromotionPostgres(db *sql.DB) *PromotionPostgres {
	return &PromotionPostgres{db: db}
}

var _ repository.PromotionRepository = (*PromotionPostgres)(nil)

const promotionColumns = `id, code, description, discount_type, discount_value, min_order_cents, max_uses, used_count, starts_at, ends_at, is_active, created_at`

func scanPromotion(s scanner) (*model.Promotion, error) {
	var p model.Promotion
	if err := s.Scan(
		&p.ID,
		&p.Code,
		&p.Description,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MinOrderCents,
		&p.MaxUses,
		&p.UsedCount,
		&p.StartsAt,
		&p.EndsAt,
		&p.IsActive,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a promotion.
func (r *PromotionPostgres) Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error) {
	const q = `
		INSERT INTO promotions (id, code, description, discount_type, discount_value, min_order_cents, max_uses, used_count, starts_at, ends_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11)
		RETURNING ` + promotionColumns
	out, err := scanPromotion(r.db.QueryRowContext(ctx, q,
		p.ID, p.Code, p.Description, p.DiscountType, p.DiscountValue, p.MinOrderCents, p.MaxUses, p.StartsAt, p.EndsAt, p.IsActive, p.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a promotion.
func (r *PromotionPostgres) FindByID(ctx context.Context, id string) (*model.Promotion, error) {
	return scanPromotion(r.db.QueryRowContext(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
}

// FindByCode fetches a promotion by its normalized code.
func (r *PromotionPostgres) FindByCode(ctx context.Context, code string) (*model.Promotion, error) {
	return scanPromotion(r.db.QueryRowContext(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE code = $1`, code))
}

// List returns promotions, soonest ending first.
func (r *PromotionPostgres) List(ctx context.Context, activeOnly bool, pq repository.PageQuery) (*model.Page[model.Promotion], error) {
	var w where
	if activeOnly {
		w.addRaw("is_active = true")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM promotions`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(pq)
	rows, err := r.db.QueryContext(ctx, `SELECT `+promotionColumns+` FROM promotions`+w.String()+` ORDER BY ends_at ASC, id ASC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Promotion]{Items: items, Total: total}, nil
}

// Update overwrites the editable fields of a promotion. The code and usage count are kept.
func (r *PromotionPostgres) Update(ctx context.Context, p *model.Promotion) (*model.Promotion, error) {
	const q = `
		UPDATE promotions
		SET description = $2, discount_type = $3, discount_value = $4, min_order_cents = $5,
		    max_uses = $6, starts_at = $7, ends_at = $8, is_active = $9
		WHERE id = $1
		RETURNING ` + promotionColumns
	return scanPromotion(r.db.QueryRowContext(ctx, q,
		p.ID, p.Description, p.DiscountType, p.DiscountValue, p.MinOrderCents, p.MaxUses, p.StartsAt, p.EndsAt, p.IsActive))
}

// SetActive toggles a promotion.
func (r *PromotionPostgres) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE promotions SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a promotion.
func (r *PromotionPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// DeactivateEnded switches off promotions that are past their end.
func (r *PromotionPostgres) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE promotions SET is_active = false WHERE is_active = true AND ends_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
