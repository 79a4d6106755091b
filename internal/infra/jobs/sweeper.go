package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"
)

// Sweeper drains due rows from scheduled_jobs. Jobs survive restarts because
// they live in the same database as the orders that scheduled them.
type Sweeper struct {
	uow      shared.UnitOfWork
	handlers map[string]shared.JobHandler
	clock    clock.Clock
	cfg      config.SchedulerConfig
	logger   *slog.Logger
}

func NewSweeper(
	uow shared.UnitOfWork,
	handlers []shared.JobHandler,
	clk clock.Clock,
	cfg config.SchedulerConfig,
	logger *slog.Logger,
) *Sweeper {
	registry := make(map[string]shared.JobHandler, len(handlers))
	for _, h := range handlers {
		registry[h.Kind()] = h
	}
	return &Sweeper{
		uow:      uow,
		handlers: registry,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run polls until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("scheduled job sweep failed", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce claims one batch of due jobs and runs each to an outcome.
// It returns the number of jobs it claimed.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	now := s.clock.Now()

	var claimed []shared.ScheduledJob
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		claimed, err = tx.Jobs().ClaimDue(ctx, tx.DB(), now, now.Add(-s.cfg.LeaseTimeout), s.cfg.BatchSize)
		return err
	})
	if err != nil {
		return 0, errs.Wrap(err, "failed to claim scheduled jobs")
	}

	for _, job := range claimed {
		if ctx.Err() != nil {
			// Unfinished leases expire and are picked up by the next sweep.
			return len(claimed), ctx.Err()
		}
		s.dispatch(ctx, job)
	}
	return len(claimed), nil
}

func (s *Sweeper) dispatch(ctx context.Context, job shared.ScheduledJob) {
	handler, ok := s.handlers[job.Kind]
	if !ok {
		s.record(ctx, job, errs.Newf("no handler registered for job kind %q", job.Kind), true)
		return
	}

	err := handler.Handle(ctx, job.Payload)
	s.record(ctx, job, err, false)
}

func (s *Sweeper) record(ctx context.Context, job shared.ScheduledJob, jobErr error, permanent bool) {
	at := s.clock.Now()

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		switch {
		case jobErr == nil:
			return tx.Jobs().Complete(ctx, tx.DB(), job.ID, at)
		case permanent || job.Attempts >= s.cfg.MaxAttempts:
			return tx.Jobs().Fail(ctx, tx.DB(), job.ID, jobErr.Error(), at)
		default:
			runAt := at.Add(s.cfg.RetryBackoff * time.Duration(job.Attempts))
			return tx.Jobs().Reschedule(ctx, tx.DB(), job.ID, runAt, jobErr.Error(), at)
		}
	})

	attrs := []any{
		slog.String("job_id", job.ID.String()),
		slog.String("kind", job.Kind),
		slog.Int("attempt", int(job.Attempts)),
	}
	if err != nil {
		s.logger.Error("failed to record scheduled job outcome", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	if jobErr != nil {
		s.logger.Warn("scheduled job failed", append(attrs, slog.String("error", jobErr.Error()))...)
	}
}
