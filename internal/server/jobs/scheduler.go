// Package jobs runs periodic server maintenance on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/robfig/cron/v3"
)

type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron *cron.Cron
	log  logging.Logger
}

func NewScheduler(loc *time.Location, log logging.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		log:  log.With("module", "scheduler"),
	}
}

// SchedulePurge registers the expired session cleanup. spec is a standard
// five-field cron expression or a descriptor such as "@every 1h".
func (s *Scheduler) SchedulePurge(ctx context.Context, spec string, p SessionPurger) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, PurgeSessions(ctx, p, s.log))
}

// PurgeSessions returns a job that deletes expired sessions once.
func PurgeSessions(ctx context.Context, p SessionPurger, log logging.Logger) func() {
	return func() {
		n, err := p.PurgeExpiredSessions(ctx)
		if err != nil {
			log.Error(ctx, "session purge failed", "error", err)
			return
		}
		if n > 0 {
			log.Info(ctx, "expired sessions purged", "count", n)
		}
	}
}

// Len reports how many jobs are registered.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.log.Info(ctx, "Scheduler started", "jobs", s.Len())

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.log.Info(ctx, "Scheduler stopped")
}
