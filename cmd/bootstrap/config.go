package bootstrap

import (
	"storefront-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// sections consumed directly by use cases
		func(cfg config.Config) config.CheckoutConfig { return cfg.Checkout },
		func(cfg config.Config) config.SchedulerConfig { return cfg.Scheduler },
	),
)
