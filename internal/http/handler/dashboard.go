package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/service"
)

// DashboardStatistics returns the current-month KPIs with growth versus last month.
//
//	@Summary	Dashboard statistics
//	@Tags		dashboard
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	successPayload
//	@Router		/dashboard/statistics [get]
func DashboardStatistics(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Statistics(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return ok(c, stats)
	}
}

// MonthlyRevenue returns per-month revenue, oldest first.
//
//	@Summary	Monthly revenue
//	@Tags		dashboard
//	@Produce	json
//	@Security	BearerAuth
//	@Param		months	query		int	false	"number of months (max 24)"
//	@Success	200		{object}	successPayload
//	@Router		/dashboard/revenue [get]
func MonthlyRevenue(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		months, err := queryInt(c, "months", 0)
		if err != nil {
			return fail(c, err)
		}
		rows, err := svc.MonthlyRevenue(c.UserContext(), months)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, rows)
	}
}

func RecentOrders(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			return fail(c, err)
		}
		orders, err := svc.RecentOrders(c.UserContext(), limit)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, orders)
	}
}

func TopProducts(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			return fail(c, err)
		}
		products, err := svc.TopProducts(c.UserContext(), limit)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, products)
	}
}

func OrderStatusBreakdown(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.OrderStatusBreakdown(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return ok(c, counts)
	}
}
