package bootstrap

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/infra/jobs"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		fx.Annotate(
			NewSweeper,
			fx.ParamTags(``, `group:"job_handlers"`),
		),
	),
	fx.Invoke(startSweeper),
)

func NewSweeper(uow shared.UnitOfWork, handlers []shared.JobHandler, clk clock.Clock, cfg config.Config, logger *slog.Logger) *jobs.Sweeper {
	return jobs.NewSweeper(uow, handlers, clk, cfg.Scheduler, logger)
}

func startSweeper(lc fx.Lifecycle, sweeper *jobs.Sweeper, cfg config.Config, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("scheduled job sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting scheduled job sweeper", "poll_interval", cfg.Scheduler.PollInterval)
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			logger.Info("scheduled job sweeper stopped")
			return nil
		},
	})
}
