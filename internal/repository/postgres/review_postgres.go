package postgres

import (
	"context"
	"database/sql"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

func scanReview(s scanner) (*model.Review, error) {
	var rv model.Review
	if err := s.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

const reviewSelect = `
	SELECT r.id, r.product_id, r.user_id, u.name, r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

// Create inserts a review.
func (r *ReviewPostgres) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, q, rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return r.FindByID(ctx, rv.ID)
}

// FindByID fetches a review with its author name.
func (r *ReviewPostgres) FindByID(ctx context.Context, id string) (*model.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = $1`, id))
}

// ListByProduct returns a product's reviews, newest first.
func (r *ReviewPostgres) ListByProduct(ctx context.Context, productID string, pq repository.PageQuery) (*model.Page[model.Review], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, reviewSelect+` WHERE r.product_id = $1 ORDER BY r.created_at DESC, r.id DESC LIMIT $2 OFFSET $3`,
		productID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Review]{Items: items, Total: total}, nil
}

// Delete removes a review.
func (r *ReviewPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
