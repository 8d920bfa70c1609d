package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewService manages product reviews.
type ReviewService interface {
	Create(ctx context.Context, userID, productID string, in ReviewInput) (*model.Review, error)
	// ListByProduct hides reviews of archived products from non-admins.
	ListByProduct(ctx context.Context, productID string, viewerIsAdmin bool, limit, offset int) (*model.Page[model.Review], error)
	// Delete removes a review written by actorID, or any review when the actor is an admin.
	Delete(ctx context.Context, actorID string, actorRole model.UserRole, id string) error
}

type reviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	now      clock
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) ReviewService {
	return &reviewService{reviews: reviews, products: products, now: utcNow}
}

func (s *reviewService) Create(ctx context.Context, userID, productID string, in ReviewInput) (*model.Review, error) {
	if productID == "" {
		return nil, ErrIDRequired
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.product(ctx, productID, false); err != nil {
		return nil, err
	}

	rv, err := s.reviews.Create(ctx, &model.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID string, viewerIsAdmin bool, limit, offset int) (*model.Page[model.Review], error) {
	if productID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.product(ctx, productID, viewerIsAdmin); err != nil {
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, productID, page(limit, offset))
}

func (s *reviewService) Delete(ctx context.Context, actorID string, actorRole model.UserRole, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if rv.UserID != actorID && actorRole != model.UserRoleAdmin {
		return ErrForbidden
	}
	return notFound(s.reviews.Delete(ctx, id))
}

// product loads a reviewable product. Archived products only exist for admins.
func (s *reviewService) product(ctx context.Context, id string, viewerIsAdmin bool) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if p.IsArchived && !viewerIsAdmin {
		return nil, ErrNotFound
	}
	return p, nil
}
