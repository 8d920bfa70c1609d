package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"storeadmin/internal/config"
	svcMocks "storeadmin/internal/service/mocks"
)

func TestJobs_RunAgainstServices(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	orgs := new(svcMocks.MockOrganizationService)
	memberships := new(svcMocks.MockMembershipService)
	promotions := new(svcMocks.MockPromotionService)
	orgs.On("ExpireInvitations", mock.Anything, now).Return(int64(3), nil)
	memberships.On("ExpireDue", mock.Anything, now).Return(int64(0), nil)
	promotions.On("DeactivateEnded", mock.Anything, now).Return(int64(0), errors.New("db down"))

	cfg := config.SchedulerConfig{InvitationsSpec: "@every 1h", MembershipsSpec: "@hourly", PromotionsSpec: "*/15 * * * *"}
	s, err := New(zap.New(core), Jobs(cfg, orgs, memberships, promotions)...)
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	assert.Len(t, s.cron.Entries(), 3)

	n, err := s.RunNow(context.Background(), "expire_invitations")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = s.RunNow(context.Background(), "expire_memberships")
	require.NoError(t, err)

	_, err = s.RunNow(context.Background(), "deactivate_promotions")
	assert.EqualError(t, err, "db down")

	finished := logs.FilterMessage("job finished").AllUntimed()
	require.Len(t, finished, 2)
	assert.Equal(t, "expire_invitations", finished[0].ContextMap()["job"])
	assert.Equal(t, int64(3), finished[0].ContextMap()["affected"])
	assert.Equal(t, "scheduler", finished[0].ContextMap()["component"])
	assert.Equal(t, 1, logs.FilterMessage("job failed").Len())

	orgs.AssertExpectations(t)
	memberships.AssertExpectations(t)
	promotions.AssertExpectations(t)
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New(nil, Job{Name: "broken", Spec: "every tuesday", Run: func(context.Context, time.Time) (int64, error) { return 0, nil }})
	assert.ErrorContains(t, err, "schedule broken")
}

func TestRunNow_UnknownJob(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	_, err = s.RunNow(context.Background(), "nope")
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
