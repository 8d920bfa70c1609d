package model

import "time"

// MembershipPlan is a customer loyalty tier.
type MembershipPlan string

const (
	PlanFree   MembershipPlan = "free"
	PlanSilver MembershipPlan = "silver"
	PlanGold   MembershipPlan = "gold"
)

// Valid reports whether p is a known plan.
func (p MembershipPlan) Valid() bool {
	return p == PlanFree || p == PlanSilver || p == PlanGold
}

// MembershipStatus is the state of a customer's plan.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipCancelled MembershipStatus = "cancelled"
	MembershipExpired   MembershipStatus = "expired"
)

// Membership is a customer's subscription to a plan. Each user has at most one.
type Membership struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Plan      MembershipPlan   `json:"plan"`
	Status    MembershipStatus `json:"status"`
	StartedAt time.Time        `json:"started_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// MembershipFilter narrows membership listings.
type MembershipFilter struct {
	Plan   MembershipPlan
	Status MembershipStatus
	Limit  int
	Offset int
}
