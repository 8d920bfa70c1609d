package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storeadmin/internal/cache"
	"storeadmin/internal/logger"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
)

const (
	dashboardStatsKey   = "dashboard:statistics"
	defaultRevenueMonth = 12
	maxRevenueMonths    = 24
	defaultRankLimit    = 5
	maxRankLimit        = 50
)

// DashboardService computes the admin dashboard figures.
type DashboardService interface {
	Statistics(ctx context.Context) (*model.DashboardStatistics, error)
	MonthlyRevenue(ctx context.Context, months int) ([]model.MonthlyRevenue, error)
	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
	OrderStatusBreakdown(ctx context.Context) ([]model.StatusCount, error)
	// Invalidate drops cached statistics after orders change.
	Invalidate(ctx context.Context) error
}

type dashboardService struct {
	stats repository.StatsRepository
	cache cache.Client
	ttl   time.Duration
	now   clock
}

func NewDashboardService(stats repository.StatsRepository, c cache.Client, ttl time.Duration) DashboardService {
	return &dashboardService{stats: stats, cache: c, ttl: ttl, now: utcNow}
}

// Growth returns the percentage change from prev to cur rounded to one decimal.
// A zero previous value yields 100 when cur is positive and 0 otherwise.
func Growth(cur, prev int64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	g := float64(cur-prev) / float64(prev) * 100
	return math.Round(g*10) / 10
}

func metric(cur, prev int64) model.Metric {
	return model.Metric{Current: cur, Previous: prev, Growth: Growth(cur, prev)}
}

func (s *dashboardService) Statistics(ctx context.Context) (*model.DashboardStatistics, error) {
	if s.cache != nil {
		var cached model.DashboardStatistics
		err := cache.GetJSON(ctx, s.cache, dashboardStatsKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			logger.From(ctx).Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	now := s.now()
	cur := model.MonthPeriod(now)
	prev := cur.Previous()

	var (
		revCur, ordCur, revPrev, ordPrev int64
		custCur, custPrev                int64
		prodCur, prodPrev                int64
		totalRev, totalOrd               int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revCur, ordCur, err = s.stats.Revenue(gctx, cur)
		return err
	})
	g.Go(func() (err error) {
		revPrev, ordPrev, err = s.stats.Revenue(gctx, prev)
		return err
	})
	g.Go(func() (err error) {
		custCur, err = s.stats.NewCustomers(gctx, cur)
		return err
	})
	g.Go(func() (err error) {
		custPrev, err = s.stats.NewCustomers(gctx, prev)
		return err
	})
	g.Go(func() (err error) {
		prodCur, err = s.stats.NewProducts(gctx, cur)
		return err
	})
	g.Go(func() (err error) {
		prodPrev, err = s.stats.NewProducts(gctx, prev)
		return err
	})
	g.Go(func() (err error) {
		totalRev, totalOrd, err = s.stats.Totals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.DashboardStatistics{
		Revenue:      metric(revCur, revPrev),
		Orders:       metric(ordCur, ordPrev),
		Customers:    metric(custCur, custPrev),
		Products:     metric(prodCur, prodPrev),
		TotalRevenue: totalRev,
		TotalOrders:  totalOrd,
		GeneratedAt:  now,
	}
	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, dashboardStatsKey, out, s.ttl); err != nil {
			logger.From(ctx).Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

// MonthlyRevenue returns one entry per calendar month (UTC), oldest first,
// including months without orders.
func (s *dashboardService) MonthlyRevenue(ctx context.Context, months int) ([]model.MonthlyRevenue, error) {
	if months <= 0 {
		months = defaultRevenueMonth
	}
	if months > maxRevenueMonths {
		months = maxRevenueMonths
	}
	first := model.MonthPeriod(s.now().UTC()).From.AddDate(0, -(months - 1), 0)

	rows, err := s.stats.MonthlyRevenue(ctx, first)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]model.MonthlyRevenue, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	out := make([]model.MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0).Format("2006-01")
		if r, ok := byMonth[m]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, model.MonthlyRevenue{Month: m})
	}
	return out, nil
}

func rankLimit(limit int) int {
	if limit <= 0 {
		return defaultRankLimit
	}
	if limit > maxRankLimit {
		return maxRankLimit
	}
	return limit
}

func (s *dashboardService) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return s.stats.RecentOrders(ctx, rankLimit(limit))
}

func (s *dashboardService) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	return s.stats.TopProducts(ctx, rankLimit(limit))
}

// OrderStatusBreakdown reports every status, including those with no orders.
func (s *dashboardService) OrderStatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	rows, err := s.stats.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[model.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	all := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusPaid,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}
	out := make([]model.StatusCount, 0, len(all))
	for _, st := range all {
		out = append(out, model.StatusCount{Status: st, Count: counts[st]})
	}
	return out, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, dashboardStatsKey)
}
