package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/validate"
)

type SubscribeInput struct {
	Plan   model.MembershipPlan `json:"plan" validate:"required,oneof=free silver gold"`
	Months int                  `json:"months" validate:"gte=1,lte=24"`
}

// MembershipService manages customer plans.
type MembershipService interface {
	Get(ctx context.Context, userID string) (*model.Membership, error)
	// Subscribe extends an active plan of the same tier, otherwise starts a new period now.
	Subscribe(ctx context.Context, userID string, in SubscribeInput) (*model.Membership, error)
	Cancel(ctx context.Context, userID string) (*model.Membership, error)
	List(ctx context.Context, f model.MembershipFilter) (*model.Page[model.Membership], error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type membershipService struct {
	repo repository.MembershipRepository
	now  clock
}

func NewMembershipService(repo repository.MembershipRepository) MembershipService {
	return &membershipService{repo: repo, now: utcNow}
}

func (s *membershipService) Get(ctx context.Context, userID string) (*model.Membership, error) {
	m, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (s *membershipService) Subscribe(ctx context.Context, userID string, in SubscribeInput) (*model.Membership, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()

	current, err := s.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	next := &model.Membership{
		ID:        uuid.NewString(),
		UserID:    userID,
		Plan:      in.Plan,
		Status:    model.MembershipActive,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, in.Months, 0),
	}
	if current != nil {
		next.ID = current.ID
		if current.Status == model.MembershipActive && current.Plan == in.Plan && current.ExpiresAt.After(now) {
			next.StartedAt = current.StartedAt
			next.ExpiresAt = current.ExpiresAt.AddDate(0, in.Months, 0)
		}
	}
	return s.repo.Upsert(ctx, next)
}

func (s *membershipService) Cancel(ctx context.Context, userID string) (*model.Membership, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.Status != model.MembershipActive {
		return nil, ErrMembershipInactive
	}
	current.Status = model.MembershipCancelled
	return s.repo.Upsert(ctx, current)
}

func (s *membershipService) List(ctx context.Context, f model.MembershipFilter) (*model.Page[model.Membership], error) {
	if f.Plan != "" && !f.Plan.Valid() {
		return nil, validate.Field("plan", "must be one of: free, silver, gold")
	}
	switch f.Status {
	case "", model.MembershipActive, model.MembershipCancelled, model.MembershipExpired:
	default:
		return nil, validate.Field("status", "must be one of: active, cancelled, expired")
	}
	pq := page(f.Limit, f.Offset)
	f.Limit, f.Offset = pq.Limit, pq.Offset
	return s.repo.List(ctx, f)
}

func (s *membershipService) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.ExpireDue(ctx, now)
}
