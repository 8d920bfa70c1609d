package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/model"
	repoMocks "storeadmin/internal/repository/mocks"
)

var memberNow = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func newMemberships(repo *repoMocks.MockMembershipRepository) *membershipService {
	svc := NewMembershipService(repo).(*membershipService)
	svc.now = func() time.Time { return memberNow }
	return svc
}

func TestMembershipService_Subscribe(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		current     *model.Membership
		in          SubscribeInput
		wantID      string
		wantStarted time.Time
		wantExpires time.Time
	}{
		{
			name:        "first subscription",
			in:          SubscribeInput{Plan: model.PlanSilver, Months: 3},
			wantStarted: memberNow,
			wantExpires: memberNow.AddDate(0, 3, 0),
		},
		{
			name: "same active plan is extended",
			current: &model.Membership{
				ID: "m-1", Plan: model.PlanGold, Status: model.MembershipActive,
				StartedAt: memberNow.AddDate(0, -1, 0), ExpiresAt: memberNow.AddDate(0, 1, 0),
			},
			in:          SubscribeInput{Plan: model.PlanGold, Months: 2},
			wantID:      "m-1",
			wantStarted: memberNow.AddDate(0, -1, 0),
			wantExpires: memberNow.AddDate(0, 3, 0),
		},
		{
			name: "plan change restarts the period",
			current: &model.Membership{
				ID: "m-1", Plan: model.PlanSilver, Status: model.MembershipActive,
				StartedAt: memberNow.AddDate(0, -1, 0), ExpiresAt: memberNow.AddDate(0, 1, 0),
			},
			in:          SubscribeInput{Plan: model.PlanGold, Months: 1},
			wantID:      "m-1",
			wantStarted: memberNow,
			wantExpires: memberNow.AddDate(0, 1, 0),
		},
		{
			name: "cancelled plan restarts",
			current: &model.Membership{
				ID: "m-1", Plan: model.PlanGold, Status: model.MembershipCancelled,
				StartedAt: memberNow.AddDate(0, -1, 0), ExpiresAt: memberNow.AddDate(0, 1, 0),
			},
			in:          SubscribeInput{Plan: model.PlanGold, Months: 1},
			wantID:      "m-1",
			wantStarted: memberNow,
			wantExpires: memberNow.AddDate(0, 1, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.MockMembershipRepository)
			if tt.current != nil {
				repo.On("FindByUser", ctx, "u-1").Return(tt.current, nil)
			} else {
				repo.On("FindByUser", ctx, "u-1").Return(nil, sql.ErrNoRows)
			}
			var saved *model.Membership
			repo.On("Upsert", ctx, mock.Anything).Run(func(args mock.Arguments) {
				saved = args.Get(1).(*model.Membership)
			}).Return(&model.Membership{}, nil)

			_, err := newMemberships(repo).Subscribe(ctx, "u-1", tt.in)
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, model.MembershipActive, saved.Status)
			assert.Equal(t, tt.in.Plan, saved.Plan)
			assert.True(t, tt.wantStarted.Equal(saved.StartedAt), "started_at %s", saved.StartedAt)
			assert.True(t, tt.wantExpires.Equal(saved.ExpiresAt), "expires_at %s", saved.ExpiresAt)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, saved.ID)
			}
		})
	}

	t.Run("invalid months", func(t *testing.T) {
		repo := new(repoMocks.MockMembershipRepository)
		_, err := newMemberships(repo).Subscribe(ctx, "u-1", SubscribeInput{Plan: model.PlanGold, Months: 36})
		assert.ErrorContains(t, err, "months")
	})
}

func TestMembershipService_Cancel(t *testing.T) {
	ctx := context.Background()

	repo := new(repoMocks.MockMembershipRepository)
	repo.On("FindByUser", ctx, "u-1").Return(&model.Membership{ID: "m-1", Status: model.MembershipActive}, nil)
	repo.On("Upsert", ctx, mock.MatchedBy(func(m *model.Membership) bool {
		return m.Status == model.MembershipCancelled
	})).Return(&model.Membership{ID: "m-1", Status: model.MembershipCancelled}, nil)
	repo.On("FindByUser", ctx, "u-2").Return(&model.Membership{ID: "m-2", Status: model.MembershipExpired}, nil)
	repo.On("FindByUser", ctx, "u-3").Return(nil, sql.ErrNoRows)

	svc := newMemberships(repo)
	m, err := svc.Cancel(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, model.MembershipCancelled, m.Status)

	_, err = svc.Cancel(ctx, "u-2")
	assert.ErrorIs(t, err, ErrMembershipInactive)

	_, err = svc.Cancel(ctx, "u-3")
	assert.ErrorIs(t, err, ErrNotFound)
}
