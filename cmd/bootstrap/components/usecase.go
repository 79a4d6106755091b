package components

import (
	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseJobsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		order.NewULIDNumberGenerator,
		fx.As(new(order.NumberGenerator)),
	),
	commands.NewDiscountResolver,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderUseCase,
		commands.NewCartUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewCartQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewAuthenticator,
	),
)

// Handlers join the job_handlers group consumed by the sweeper.
var usecaseJobsModule = fx.Module("usecase/jobs",
	fx.Provide(
		fx.Annotate(
			commands.NewAutoConfirmHandler,
			fx.As(new(shared.JobHandler)),
			fx.ResultTags(`group:"job_handlers"`),
		),
	),
)
