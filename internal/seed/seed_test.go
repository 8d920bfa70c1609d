package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	repoMocks "storeadmin/internal/repository/mocks"
	"storeadmin/internal/service"
	svcMocks "storeadmin/internal/service/mocks"
)

const catalogYAML = `
users:
  - email: Admin@Shop.test
    name: Store Admin
    password: change-me-now
    role: admin
  - email: ana@shop.test
    name: Ana
    password: customer-pass
products:
  - name: Ceramic Mug
    category: kitchen
    price_cents: 1500
    stock: 40
  - name: Linen Shirt
    price_cents: 4000
    stock: 5
promotions:
  - code: WELCOME10
    discount_type: percent
    discount_value: 10
    starts_at: 2026-01-01T00:00:00Z
    ends_at: 2027-01-01T00:00:00Z
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	require.Len(t, c.Users, 2)
	assert.Equal(t, model.UserRoleAdmin, c.Users[0].Role)
	assert.Equal(t, model.UserRoleCustomer, c.Users[1].Role)
	require.Len(t, c.Products, 2)
	assert.Equal(t, int64(1500), c.Products[0].PriceCents)
	require.Len(t, c.Promotions, 1)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), c.Promotions[0].EndsAt.UTC())
}

func TestLoad_Rejects(t *testing.T) {
	_, err := Load(strings.NewReader("products:\n  - name: Mug\n    prize: 10\n"))
	assert.ErrorContains(t, err, "decode catalog")

	_, err = Load(strings.NewReader("users:\n  - email: a@b.c\n    password: x\n    role: owner\n"))
	assert.ErrorContains(t, err, "unknown role")
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Products)
}

func TestSeeder_Apply(t *testing.T) {
	ctx := context.Background()
	c, err := Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	users := new(repoMocks.MockUserRepository)
	products := new(svcMocks.MockProductService)
	promotions := new(svcMocks.MockPromotionService)

	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "admin@shop.test" && u.Role == model.UserRoleAdmin && u.PasswordHash == "h:change-me-now"
	})).Return(&model.User{ID: "u-1"}, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "ana@shop.test"
	})).Return(nil, repository.ErrDuplicate)

	products.On("List", ctx, model.ProductFilter{Search: "Ceramic Mug", IncludeArchived: true, Limit: 100}).
		Return(&model.Page[model.Product]{Items: []model.Product{{Name: "ceramic mug"}}, Total: 1}, nil)
	products.On("List", ctx, model.ProductFilter{Search: "Linen Shirt", IncludeArchived: true, Limit: 100}).
		Return(&model.Page[model.Product]{}, nil)
	products.On("Create", ctx, service.ProductInput{Name: "Linen Shirt", PriceCents: 4000, Stock: 5}).
		Return(&model.Product{ID: "p-2"}, nil)

	promotions.On("Create", ctx, mock.MatchedBy(func(in service.PromotionInput) bool {
		return in.Code == "WELCOME10" && in.DiscountType == model.DiscountPercent
	})).Return(nil, service.ErrPromotionTaken)

	s := NewSeeder(users, products, promotions, nil)
	s.hash = func(p string) (string, error) { return "h:" + p, nil }

	res, err := s.Apply(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Skipped: 3}, res)

	users.AssertExpectations(t)
	products.AssertExpectations(t)
	promotions.AssertExpectations(t)
}
