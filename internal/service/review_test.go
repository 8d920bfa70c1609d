package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	repoMocks "storeadmin/internal/repository/mocks"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        ReviewInput
		setup     func(p *repoMocks.MockProductRepository, r *repoMocks.MockReviewRepository)
		wantErrIs error
		wantErr   string
	}{
		{
			name: "stores trimmed comment",
			in:   ReviewInput{Rating: 5, Comment: "  great  "},
			setup: func(p *repoMocks.MockProductRepository, r *repoMocks.MockReviewRepository) {
				p.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1"}, nil)
				r.On("Create", ctx, mock.MatchedBy(func(rv *model.Review) bool {
					return rv.ProductID == "p-1" && rv.UserID == "u-1" && rv.Comment == "great" && rv.Rating == 5
				})).Return(&model.Review{ID: "r-1", Rating: 5, Comment: "great"}, nil)
			},
		},
		{
			name: "archived product",
			in:   ReviewInput{Rating: 4},
			setup: func(p *repoMocks.MockProductRepository, r *repoMocks.MockReviewRepository) {
				p.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", IsArchived: true}, nil)
			},
			wantErrIs: ErrNotFound,
		},
		{
			name:    "rating out of range",
			in:      ReviewInput{Rating: 6},
			setup:   func(*repoMocks.MockProductRepository, *repoMocks.MockReviewRepository) {},
			wantErr: "rating",
		},
		{
			name: "unknown product",
			in:   ReviewInput{Rating: 3},
			setup: func(p *repoMocks.MockProductRepository, r *repoMocks.MockReviewRepository) {
				p.On("FindByID", ctx, "p-1").Return(nil, sql.ErrNoRows)
			},
			wantErrIs: ErrNotFound,
		},
		{
			name: "second review",
			in:   ReviewInput{Rating: 4},
			setup: func(p *repoMocks.MockProductRepository, r *repoMocks.MockReviewRepository) {
				p.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1"}, nil)
				r.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErrIs: ErrAlreadyReviewed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(repoMocks.MockProductRepository)
			reviews := new(repoMocks.MockReviewRepository)
			tt.setup(products, reviews)

			rv, err := NewReviewService(reviews, products).Create(ctx, "u-1", "p-1", tt.in)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantErr != "":
				assert.ErrorContains(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, "r-1", rv.ID)
			}
			reviews.AssertExpectations(t)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()
	own := &model.Review{ID: "r-1", UserID: "u-1"}

	t.Run("author deletes", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		reviews.On("FindByID", ctx, "r-1").Return(own, nil)
		reviews.On("Delete", ctx, "r-1").Return(nil)
		assert.NoError(t, NewReviewService(reviews, nil).Delete(ctx, "u-1", model.UserRoleCustomer, "r-1"))
	})

	t.Run("other customer is forbidden", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		reviews.On("FindByID", ctx, "r-1").Return(own, nil)
		err := NewReviewService(reviews, nil).Delete(ctx, "u-2", model.UserRoleCustomer, "r-1")
		assert.ErrorIs(t, err, ErrForbidden)
		reviews.AssertNotCalled(t, "Delete", ctx, "r-1")
	})

	t.Run("admin deletes any", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		reviews.On("FindByID", ctx, "r-1").Return(own, nil)
		reviews.On("Delete", ctx, "r-1").Return(nil)
		assert.NoError(t, NewReviewService(reviews, nil).Delete(ctx, "u-9", model.UserRoleAdmin, "r-1"))
	})

	t.Run("missing review", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		reviews.On("FindByID", ctx, "r-2").Return(nil, sql.ErrNoRows)
		err := NewReviewService(reviews, nil).Delete(ctx, "u-1", model.UserRoleCustomer, "r-2")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReviewService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	products := new(repoMocks.MockProductRepository)
	products.On("FindByID", ctx, "p-old").Return(&model.Product{ID: "p-old", IsArchived: true}, nil)
	reviews := new(repoMocks.MockReviewRepository)
	page := &model.Page[model.Review]{Items: []model.Review{{ID: "r-1"}}, Total: 1}
	reviews.On("ListByProduct", ctx, "p-old", repository.PageQuery{Limit: 10}).Return(page, nil).Once()
	svc := NewReviewService(reviews, products)

	_, err := svc.ListByProduct(ctx, "p-old", false, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := svc.ListByProduct(ctx, "p-old", true, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	reviews.AssertExpectations(t)
}
