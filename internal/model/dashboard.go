package model

import "time"

// Metric is a month-over-month figure.
type Metric struct {
	Current  int64   `json:"current"`
	Previous int64   `json:"previous"`
	Growth   float64 `json:"growth"`
}

// DashboardStatistics summarises the store for the admin dashboard.
type DashboardStatistics struct {
	Revenue      Metric    `json:"revenue"`
	Orders       Metric    `json:"orders"`
	Customers    Metric    `json:"customers"`
	Products     Metric    `json:"products"`
	TotalRevenue int64     `json:"total_revenue"`
	TotalOrders  int64     `json:"total_orders"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// MonthlyRevenue is the revenue booked in one calendar month.
type MonthlyRevenue struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue_cents"`
	Orders       int64  `json:"orders"`
}

// TopProduct is a product ranked by units sold.
type TopProduct struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	UnitsSold    int64  `json:"units_sold"`
	RevenueCents int64  `json:"revenue_cents"`
}

// StatusCount is the number of orders in a status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}

// Period is a half-open time range [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// MonthPeriod returns the calendar month containing t in t's location.
func MonthPeriod(t time.Time) Period {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// Previous returns the calendar month before a month period.
func (p Period) Previous() Period {
	return Period{From: p.From.AddDate(0, -1, 0), To: p.From}
}
