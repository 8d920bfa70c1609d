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

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes another user", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("UpdateRole", ctx, "u-2", model.UserRoleAdmin).Return(nil)
		users.On("FindByID", ctx, "u-2").Return(&model.User{ID: "u-2", Role: model.UserRoleAdmin}, nil)

		u, err := NewUserService(users).UpdateRole(ctx, "u-1", "u-2", model.UserRoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, model.UserRoleAdmin, u.Role)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		_, err := NewUserService(users).UpdateRole(ctx, "u-1", "u-1", model.UserRoleCustomer)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("UpdateRole", ctx, "u-9", model.UserRoleCustomer).Return(sql.ErrNoRows)
		_, err := NewUserService(users).UpdateRole(ctx, "u-1", "u-9", model.UserRoleCustomer)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid role", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		_, err := NewUserService(users).UpdateRole(ctx, "u-1", "u-2", "root")
		assert.ErrorContains(t, err, "role")
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	users := new(repoMocks.MockUserRepository)
	users.On("Delete", ctx, "u-2").Return(repository.ErrReferenced)
	users.On("Delete", ctx, "u-3").Return(nil)
	svc := NewUserService(users)

	assert.ErrorIs(t, svc.Delete(ctx, "u-1", "u-1"), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "u-1", "u-2"), ErrInUse)
	assert.NoError(t, svc.Delete(ctx, "u-1", "u-3"))
	users.AssertExpectations(t)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.MockUserRepository)
	users.On("List", ctx, model.UserFilter{Search: "ana", Limit: 100, Offset: 5}).
		Return(&model.Page[model.User]{Items: []model.User{{ID: "u-1"}}, Total: 1}, nil)

	res, err := NewUserService(users).List(ctx, model.UserFilter{Search: " ana ", Limit: 500, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = NewUserService(users).List(ctx, model.UserFilter{Role: "owner"})
	assert.Error(t, err)
	users.AssertNotCalled(t, "List", ctx, mock.MatchedBy(func(f model.UserFilter) bool { return f.Role == "owner" }))
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()

	t.Run("one review per product", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		products := new(repoMocks.MockProductRepository)
		products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1"}, nil)
		reviews.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)

		_, err := NewReviewService(reviews, products).Create(ctx, "u-1", "p-1", ReviewInput{Rating: 4})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("rating out of range", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		products := new(repoMocks.MockProductRepository)
		_, err := NewReviewService(reviews, products).Create(ctx, "u-1", "p-1", ReviewInput{Rating: 6})
		assert.ErrorContains(t, err, "rating")
	})

	t.Run("unknown product", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		products := new(repoMocks.MockProductRepository)
		products.On("FindByID", ctx, "p-9").Return(nil, sql.ErrNoRows)
		_, err := NewReviewService(reviews, products).Create(ctx, "u-1", "p-9", ReviewInput{Rating: 3})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("only the author or an admin deletes", func(t *testing.T) {
		reviews := new(repoMocks.MockReviewRepository)
		reviews.On("FindByID", ctx, "r-1").Return(&model.Review{ID: "r-1", UserID: "u-1"}, nil)
		reviews.On("Delete", ctx, "r-1").Return(nil)
		svc := NewReviewService(reviews, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "u-2", model.UserRoleCustomer, "r-1"), ErrForbidden)
		assert.NoError(t, svc.Delete(ctx, "u-2", model.UserRoleAdmin, "r-1"))
		assert.NoError(t, svc.Delete(ctx, "u-1", model.UserRoleCustomer, "r-1"))
	})
}
