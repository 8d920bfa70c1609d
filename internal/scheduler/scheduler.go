// Package scheduler runs periodic maintenance jobs with robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"storeadmin/internal/config"
	"storeadmin/internal/service"
)

const jobTimeout = time.Minute

// Job names accepted by RunNow.
const (
	JobExpireInvitations    = "expire_invitations"
	JobExpireMemberships    = "expire_memberships"
	JobDeactivatePromotions = "deactivate_promotions"
)

// JobNames lists the maintenance jobs in registration order.
var JobNames = []string{JobExpireInvitations, JobExpireMemberships, JobDeactivatePromotions}

// Job is a maintenance task returning the number of rows it changed.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
	jobs map[string]Job
	now  func() time.Time
}

// Jobs returns the maintenance jobs wired to their services.
func Jobs(cfg config.SchedulerConfig, orgs service.OrganizationService, memberships service.MembershipService, promotions service.PromotionService) []Job {
	return []Job{
		{Name: JobExpireInvitations, Spec: cfg.InvitationsSpec, Run: orgs.ExpireInvitations},
		{Name: JobExpireMemberships, Spec: cfg.MembershipsSpec, Run: memberships.ExpireDue},
		{Name: JobDeactivatePromotions, Spec: cfg.PromotionsSpec, Run: promotions.DeactivateEnded},
	}
}

// New registers jobs on a UTC cron runner. It fails on the first invalid spec.
func New(log *zap.Logger, jobs ...Job) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "scheduler"))

	s := &Scheduler{
		log:  log,
		jobs: make(map[string]Job, len(jobs)),
		now:  func() time.Time { return time.Now().UTC() },
	}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger{log.Sugar()}), cron.SkipIfStillRunning(cronLogger{log.Sugar()})),
	)
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.Spec, func() { s.run(context.Background(), j) }); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", j.Name, j.Spec, err)
		}
		s.jobs[j.Name] = j
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// RunNow executes a registered job synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) (int64, error) {
	j, ok := s.jobs[name]
	if !ok {
		return 0, fmt.Errorf("unknown job %q", name)
	}
	return s.run(ctx, j)
}

func (s *Scheduler) run(ctx context.Context, j Job) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := j.Run(ctx, s.now())
	fields := []zap.Field{
		zap.String("job", j.Name),
		zap.Int64("affected", n),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		s.log.Error("job failed", append(fields, zap.Error(err))...)
		return n, err
	}
	s.log.Info("job finished", fields...)
	return n, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
