package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

const productColumns = `p.id, p.name, p.description, p.category, p.price_cents, p.stock, p.image_key, p.is_archived, p.created_at, p.updated_at`

// productSelect joins the rating aggregate onto every product row.
const productSelect = `
	SELECT ` + productColumns + `, COALESCE(r.avg_rating, 0), COALESCE(r.review_count, 0)
	FROM products p
	LEFT JOIN (
		SELECT product_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
		FROM reviews GROUP BY product_id
	) r ON r.product_id = p.id`

func scanProduct(s scanner) (*model.Product, error) {
	var p model.Product
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.PriceCents,
		&p.Stock,
		&p.ImageKey,
		&p.IsArchived,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AvgRating,
		&p.ReviewCount,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a product row.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, name, description, category, price_cents, stock, image_key, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	if _, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.ImageKey, p.IsArchived, p.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return r.FindByID(ctx, p.ID)
}

// FindByID fetches a product with its rating aggregate.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
}

// FindByIDs fetches every existing product among ids.
func (r *ProductPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	args := make([]any, len(ids))
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	q := productSelect + ` WHERE p.id IN (` + strings.Join(placeholders, ", ") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// List returns products matching the filter ordered by name.
func (r *ProductPostgres) List(ctx context.Context, f model.ProductFilter) (*model.Page[model.Product], error) {
	var w where
	if f.Search != "" {
		w.add("(p.name ILIKE ? OR p.description ILIKE ?)", likePattern(f.Search))
	}
	if f.Category != "" {
		w.add("p.category = ?", f.Category)
	}
	if !f.IncludeArchived {
		w.addRaw("p.is_archived = false")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := w.page(repository.PageQuery{Limit: f.Limit, Offset: f.Offset})
	rows, err := r.db.QueryContext(ctx, productSelect+w.String()+` ORDER BY p.name ASC, p.id ASC`+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.Page[model.Product]{Items: items, Total: total}, nil
}

// Update overwrites the editable fields of a product.
func (r *ProductPostgres) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		UPDATE products
		SET name = $2, description = $3, category = $4, price_cents = $5, stock = $6, updated_at = now()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock)
	if err != nil {
		return nil, err
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, p.ID)
}

// SetImage records the object key of the product image.
func (r *ProductPostgres) SetImage(ctx context.Context, id, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET image_key = $2, updated_at = now() WHERE id = $1`, id, key)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// SetArchived hides or restores a product in the storefront.
func (r *ProductPostgres) SetArchived(ctx context.Context, id string, archived bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET is_archived = $2, updated_at = now() WHERE id = $1`, id, archived)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a product. Products referenced by orders cannot be deleted and should be archived.
func (r *ProductPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}
