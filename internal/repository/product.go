package repository

import (
	"context"

	"storeadmin/internal/model"
)

// ProductRepository defines data access for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	// FindByID returns the product with its rating aggregate.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	// FindByIDs returns the products that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	List(ctx context.Context, f model.ProductFilter) (*model.Page[model.Product], error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	SetImage(ctx context.Context, id, key string) error
	SetArchived(ctx context.Context, id string, archived bool) error
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines data access for product reviews.
type ReviewRepository interface {
	// Create inserts a review. A second review by the same user yields ErrDuplicate.
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	FindByID(ctx context.Context, id string) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string, pq PageQuery) (*model.Page[model.Review], error)
	Delete(ctx context.Context, id string) error
}
