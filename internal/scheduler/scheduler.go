package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"blog_autopost/internal/domain"
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context) (*domain.RunResult, error)
}

type Config struct {
	// Spec is a standard five-field cron expression or a descriptor such as "@daily".
	Spec       string
	Location   *time.Location
	RunTimeout time.Duration
	RunOnStart bool
}

type Scheduler struct {
	runner Runner
	cfg    Config
	logger *slog.Logger
}

func NewScheduler(runner Runner, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	return &Scheduler{
		runner: runner,
		cfg:    cfg,
		logger: logger.With("component", "scheduler"),
	}
}

// Start runs the pipeline on the cron schedule until ctx is done. Overlapping
// runs are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(s.cfg.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	schedule, err := cron.ParseStandard(s.cfg.Spec)
	if err != nil {
		return fmt.Errorf("parse cron spec %q: %w", s.cfg.Spec, err)
	}
	c.Schedule(schedule, cron.FuncJob(func() { s.RunOnce(ctx) }))

	if s.cfg.RunOnStart {
		s.RunOnce(ctx)
	}

	c.Start()
	s.logger.Info("scheduler started",
		"spec", s.cfg.Spec,
		"location", s.cfg.Location.String(),
		"next_run", schedule.Next(time.Now().In(s.cfg.Location)),
	)

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// RunOnce executes a single run bounded by the configured timeout.
func (s *Scheduler) RunOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	result, err := s.runner.Run(runCtx)
	if err != nil {
		s.logger.Error("pipeline run failed", "error", err)
		return
	}
	s.logger.Info("pipeline run completed", "run_id", result.RunID, "status", result.Status)
}
