package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	repoMocks "storeadmin/internal/repository/mocks"
	"storeadmin/internal/validate"
)

var promoNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newPromotions(repo *repoMocks.MockPromotionRepository) *promotionService {
	svc := NewPromotionService(repo).(*promotionService)
	svc.now = func() time.Time { return promoNow }
	return svc
}

func validPromotion() PromotionInput {
	return PromotionInput{
		Code:          " summer25 ",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 25,
		StartsAt:      promoNow,
		EndsAt:        promoNow.AddDate(0, 1, 0),
	}
}

func TestPromotionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("uppercases the code and activates", func(t *testing.T) {
		repo := new(repoMocks.MockPromotionRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(p *model.Promotion) bool {
			return p.Code == "SUMMER25" && p.IsActive && p.DiscountValue == 25
		})).Return(&model.Promotion{ID: "promo-1", Code: "SUMMER25"}, nil)

		p, err := newPromotions(repo).Create(ctx, validPromotion())
		require.NoError(t, err)
		assert.Equal(t, "SUMMER25", p.Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(repoMocks.MockPromotionRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
		_, err := newPromotions(repo).Create(ctx, validPromotion())
		assert.ErrorIs(t, err, ErrPromotionTaken)
	})

	invalid := []struct {
		name  string
		edit  func(in *PromotionInput)
		field string
	}{
		{"percent over 100", func(in *PromotionInput) { in.DiscountValue = 150 }, "discount_value"},
		{"ends before it starts", func(in *PromotionInput) { in.EndsAt = in.StartsAt.Add(-time.Hour) }, "ends_at"},
		{"code with symbols", func(in *PromotionInput) { in.Code = "SUMMER-25" }, "code"},
		{"unknown discount type", func(in *PromotionInput) { in.DiscountType = "bogo" }, "discount_type"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.MockPromotionRepository)
			in := validPromotion()
			tt.edit(&in)

			_, err := newPromotions(repo).Create(ctx, in)
			var verr *validate.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPromotionService_Validate(t *testing.T) {
	ctx := context.Background()
	active := &model.Promotion{
		ID: "promo-1", Code: "SAVE5", DiscountType: model.DiscountFixed, DiscountValue: 500, MinOrderCents: 2000,
		IsActive: true, StartsAt: promoNow.Add(-time.Hour), EndsAt: promoNow.Add(time.Hour),
	}

	t.Run("quotes the discount", func(t *testing.T) {
		repo := new(repoMocks.MockPromotionRepository)
		repo.On("FindByCode", ctx, "SAVE5").Return(active, nil)

		q, err := newPromotions(repo).Validate(ctx, "save5", 3000)
		require.NoError(t, err)
		assert.Equal(t, &PromotionQuote{Code: "SAVE5", SubtotalCents: 3000, DiscountCents: 500, TotalCents: 2500}, q)
	})

	t.Run("below minimum", func(t *testing.T) {
		repo := new(repoMocks.MockPromotionRepository)
		repo.On("FindByCode", ctx, "SAVE5").Return(active, nil)
		_, err := newPromotions(repo).Validate(ctx, "SAVE5", 1999)
		assert.ErrorIs(t, err, ErrPromotionInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		expired := *active
		expired.EndsAt = promoNow
		repo := new(repoMocks.MockPromotionRepository)
		repo.On("FindByCode", ctx, "SAVE5").Return(&expired, nil)
		_, err := newPromotions(repo).Validate(ctx, "SAVE5", 3000)
		assert.ErrorIs(t, err, ErrPromotionInvalid)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := new(repoMocks.MockPromotionRepository)
		repo.On("FindByCode", ctx, "NOPE").Return(nil, sql.ErrNoRows)
		_, err := newPromotions(repo).Validate(ctx, "nope", 3000)
		assert.ErrorIs(t, err, ErrPromotionInvalid)
	})
}

func TestPromotionService_Deactivate(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockPromotionRepository)
	repo.On("SetActive", ctx, "promo-1", false).Return(nil)
	repo.On("FindByID", ctx, "promo-1").Return(&model.Promotion{ID: "promo-1"}, nil)
	repo.On("SetActive", ctx, "promo-9", false).Return(sql.ErrNoRows)

	svc := newPromotions(repo)
	p, err := svc.Deactivate(ctx, "promo-1")
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	_, err = svc.Deactivate(ctx, "promo-9")
	assert.ErrorIs(t, err, ErrNotFound)
}
