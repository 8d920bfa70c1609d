package model

import "time"

// DiscountType selects how a promotion's value is applied.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Promotion is a discount code. For DiscountFixed the value is in minor units.
type Promotion struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	Description   string       `json:"description"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	MinOrderCents int64        `json:"min_order_cents"`
	MaxUses       int          `json:"max_uses"`
	UsedCount     int          `json:"used_count"`
	StartsAt      time.Time    `json:"starts_at"`
	EndsAt        time.Time    `json:"ends_at"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Discount returns the discount for subtotal, never more than subtotal.
func (p *Promotion) Discount(subtotal int64) int64 {
	var d int64
	switch p.DiscountType {
	case DiscountPercent:
		d = subtotal * p.DiscountValue / 100
	case DiscountFixed:
		d = p.DiscountValue
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Redeemable reports whether the promotion can be applied at now. It does not check the order minimum.
func (p *Promotion) Redeemable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.StartsAt) || !now.Before(p.EndsAt) {
		return false
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return false
	}
	return true
}
