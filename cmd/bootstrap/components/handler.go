package components

import (
	"storefront-checkout/internal/handler"
	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewCartHandler,
		middleware.NewAuthMiddleware,
		handler.NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)
