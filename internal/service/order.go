package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/logger"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

type PlaceOrderItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=1000"`
}

type PlaceOrderInput struct {
	Items           []PlaceOrderItem `json:"items" validate:"required,min=1,max=100,dive"`
	PromotionCode   string           `json:"promotion_code" validate:"max=32"`
	ShippingAddress string           `json:"shipping_address" validate:"required,max=500"`
}

// OrderService places orders and drives their status.
type OrderService interface {
	Place(ctx context.Context, userID string, in PlaceOrderInput) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	// GetForUser returns an order only when it belongs to userID.
	GetForUser(ctx context.Context, userID, id string) (*model.Order, error)
	List(ctx context.Context, f model.OrderFilter) (*model.Page[model.Order], error)
	ListForUser(ctx context.Context, userID string, limit, offset int) (*model.Page[model.Order], error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	// Cancel lets a customer cancel their own pending order.
	Cancel(ctx context.Context, userID, id string) (*model.Order, error)
}

type orderService struct {
	orders        repository.OrderRepository
	products      repository.ProductRepository
	promotions    repository.PromotionRepository
	notifications NotificationService
	dashboard     DashboardService
	now           clock
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	promotions repository.PromotionRepository,
	notifications NotificationService,
	dashboard DashboardService,
) OrderService {
	return &orderService{
		orders:        orders,
		products:      products,
		promotions:    promotions,
		notifications: notifications,
		dashboard:     dashboard,
		now:           utcNow,
	}
}

// mergeItems sums quantities of repeated products and sorts by product ID.
func mergeItems(items []PlaceOrderItem) []PlaceOrderItem {
	qty := make(map[string]int, len(items))
	for _, it := range items {
		qty[it.ProductID] += it.Quantity
	}
	out := make([]PlaceOrderItem, 0, len(qty))
	for id, q := range qty {
		out = append(out, PlaceOrderItem{ProductID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (s *orderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*model.Order, error) {
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.PromotionCode = strings.ToUpper(strings.TrimSpace(in.PromotionCode))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	items := mergeItems(in.Items)

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	now := s.now()
	o := &model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Status:          model.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           make([]model.OrderItem, 0, len(items)),
	}
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok || p.IsArchived {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, it.ProductID)
		}
		if p.Stock < it.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		o.Items = append(o.Items, model.OrderItem{
			ID:             uuid.NewString(),
			OrderID:        o.ID,
			ProductID:      p.ID,
			ProductName:    p.Name,
			UnitPriceCents: p.PriceCents,
			Quantity:       it.Quantity,
		})
		o.SubtotalCents += p.PriceCents * int64(it.Quantity)
	}

	var promotionID string
	if in.PromotionCode != "" {
		promo, err := s.redeemable(ctx, in.PromotionCode, o.SubtotalCents)
		if err != nil {
			return nil, err
		}
		promotionID = promo.ID
		o.PromotionCode = promo.Code
		o.DiscountCents = promo.Discount(o.SubtotalCents)
	}
	o.TotalCents = o.SubtotalCents - o.DiscountCents

	created, err := s.orders.Create(ctx, o, promotionID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		case errors.Is(err, repository.ErrPromotionExhausted):
			return nil, ErrPromotionInvalid
		}
		return nil, err
	}

	s.notify(ctx, created, "Order placed", fmt.Sprintf("Your order %s was placed.", shortID(created.ID)))
	s.invalidateDashboard(ctx)
	return created, nil
}

func (s *orderService) redeemable(ctx context.Context, code string, subtotal int64) (*model.Promotion, error) {
	promo, err := s.promotions.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrPromotionInvalid
		}
		return nil, err
	}
	if !promo.Redeemable(s.now()) || subtotal < promo.MinOrderCents {
		return nil, ErrPromotionInvalid
	}
	return promo, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (s *orderService) GetForUser(ctx context.Context, userID, id string) (*model.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context, f model.OrderFilter) (*model.Page[model.Order], error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, validate.Field("status", "must be one of: pending, paid, shipped, delivered, cancelled")
	}
	pq := page(f.Limit, f.Offset)
	f.Limit, f.Offset = pq.Limit, pq.Offset
	return s.orders.List(ctx, f)
}

func (s *orderService) ListForUser(ctx context.Context, userID string, limit, offset int) (*model.Page[model.Order], error) {
	return s.List(ctx, model.OrderFilter{UserID: userID, Limit: limit, Offset: offset})
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, validate.Field("status", "must be one of: pending, paid, shipped, delivered, cancelled")
	}
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, status)
}

func (s *orderService) Cancel(ctx context.Context, userID, id string) (*model.Order, error) {
	o, err := s.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if o.Status != model.OrderStatusPending {
		return nil, ErrInvalidTransition
	}
	return s.transition(ctx, o, model.OrderStatusCancelled)
}

func (s *orderService) transition(ctx context.Context, o *model.Order, to model.OrderStatus) (*model.Order, error) {
	if !o.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}
	updated, err := s.orders.UpdateStatus(ctx, o.ID, o.Status, to)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, notFound(err)
	}
	s.notify(ctx, updated, "Order "+string(to), fmt.Sprintf("Your order %s is now %s.", shortID(updated.ID), to))
	s.invalidateDashboard(ctx)
	return updated, nil
}

func (s *orderService) notify(ctx context.Context, o *model.Order, title, body string) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Notify(ctx, o.UserID, model.NotificationOrder, title, body, "/orders/"+o.ID); err != nil {
		logger.From(ctx).Warn("order notification failed", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (s *orderService) invalidateDashboard(ctx context.Context) {
	if s.dashboard == nil {
		return
	}
	if err := s.dashboard.Invalidate(ctx); err != nil {
		logger.From(ctx).Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + strings.ToUpper(id[:8])
	}
	return "#" + strings.ToUpper(id)
}
