package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// jobTimeout bounds one leaderboard post.
const jobTimeout = 2 * time.Minute

// LeaderboardPoster posts the current year's leaderboard.
type LeaderboardPoster interface {
	PostCurrentLeaderboard(ctx context.Context, dryRun bool) error
}

// Scheduler runs the weekly leaderboard post.
type Scheduler struct {
	sched gocron.Scheduler
	job   gocron.Job
}

// New registers the leaderboard job on the five-field cron expression,
// evaluated in loc. The scheduler is not started.
func New(poster LeaderboardPoster, cronExpr string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	job, err := sched.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			log.Info("Running scheduled leaderboard post")
			if err := poster.PostCurrentLeaderboard(ctx, false); err != nil {
				log.Error("Scheduled leaderboard post failed", "error", err)
			}
		}),
		gocron.WithName("weekly-leaderboard"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("invalid leaderboard schedule %q: %w", cronExpr, err)
	}
	return &Scheduler{sched: sched, job: job}, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	if next, err := s.job.NextRun(); err == nil {
		log.Info("Leaderboard scheduler started", "nextRun", next)
	}
}

// NextRun reports when the leaderboard is posted next.
func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

// RunNow triggers the job outside its schedule.
func (s *Scheduler) RunNow() error {
	return s.job.RunNow()
}

// Shutdown stops the scheduler and waits for a running job.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
