package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

type PromotionInput struct {
	Code          string             `json:"code" validate:"required,alphanum,max=32"`
	Description   string             `json:"description" validate:"max=500"`
	DiscountType  model.DiscountType `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue int64              `json:"discount_value" validate:"gt=0"`
	MinOrderCents int64              `json:"min_order_cents" validate:"gte=0"`
	MaxUses       int                `json:"max_uses" validate:"gte=0"`
	StartsAt      time.Time          `json:"starts_at" validate:"required"`
	EndsAt        time.Time          `json:"ends_at" validate:"required,gtfield=StartsAt"`
	IsActive      *bool              `json:"is_active"`
}

// PromotionQuote is the result of validating a code against a subtotal.
type PromotionQuote struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	SubtotalCents int64  `json:"subtotal_cents"`
	DiscountCents int64  `json:"discount_cents"`
	TotalCents    int64  `json:"total_cents"`
}

// PromotionService manages discount codes.
type PromotionService interface {
	Create(ctx context.Context, in PromotionInput) (*model.Promotion, error)
	Get(ctx context.Context, id string) (*model.Promotion, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) (*model.Page[model.Promotion], error)
	Update(ctx context.Context, id string, in PromotionInput) (*model.Promotion, error)
	Deactivate(ctx context.Context, id string) (*model.Promotion, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, code string, subtotalCents int64) (*PromotionQuote, error)
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
}

type promotionService struct {
	repo repository.PromotionRepository
	now  clock
}

func NewPromotionService(repo repository.PromotionRepository) PromotionService {
	return &promotionService{repo: repo, now: utcNow}
}

func (in *PromotionInput) check() error {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		return err
	}
	if in.DiscountType == model.DiscountPercent && in.DiscountValue > 100 {
		return validate.Field("discount_value", "must be between 1 and 100 for percent discounts")
	}
	return nil
}

func (in *PromotionInput) apply(p *model.Promotion) {
	p.Code = in.Code
	p.Description = in.Description
	p.DiscountType = in.DiscountType
	p.DiscountValue = in.DiscountValue
	p.MinOrderCents = in.MinOrderCents
	p.MaxUses = in.MaxUses
	p.StartsAt = in.StartsAt.UTC()
	p.EndsAt = in.EndsAt.UTC()
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func (s *promotionService) Create(ctx context.Context, in PromotionInput) (*model.Promotion, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	p := &model.Promotion{ID: uuid.NewString(), IsActive: true, CreatedAt: s.now()}
	in.apply(p)
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPromotionTaken
		}
		return nil, err
	}
	return created, nil
}

func (s *promotionService) Get(ctx context.Context, id string) (*model.Promotion, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *promotionService) List(ctx context.Context, activeOnly bool, limit, offset int) (*model.Page[model.Promotion], error) {
	return s.repo.List(ctx, activeOnly, page(limit, offset))
}

func (s *promotionService) Update(ctx context.Context, id string, in PromotionInput) (*model.Promotion, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPromotionTaken
		}
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *promotionService) Deactivate(ctx context.Context, id string) (*model.Promotion, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

func (s *promotionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound(s.repo.Delete(ctx, id))
}

func (s *promotionService) Validate(ctx context.Context, code string, subtotalCents int64) (*PromotionQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, validate.Field("code", "is required")
	}
	if subtotalCents < 0 {
		return nil, validate.Field("subtotal_cents", "must be greater than or equal to 0")
	}
	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrPromotionInvalid
		}
		return nil, err
	}
	if !p.Redeemable(s.now()) || subtotalCents < p.MinOrderCents {
		return nil, ErrPromotionInvalid
	}
	d := p.Discount(subtotalCents)
	return &PromotionQuote{
		Code:          p.Code,
		Description:   p.Description,
		SubtotalCents: subtotalCents,
		DiscountCents: d,
		TotalCents:    subtotalCents - d,
	}, nil
}

func (s *promotionService) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.DeactivateEnded(ctx, now)
}
