package components

import (
	"forget-bot/internal/handler"
	"forget-bot/internal/handler/api"
	"forget-bot/internal/handler/interaction"
	"forget-bot/internal/handler/middleware"
	"forget-bot/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			interaction.NewAllowList,
			fx.As(new(interaction.AccessPolicy)),
		),
		interaction.NewDispatcher,
		api.NewInteractionHandler,
		api.NewReminderHandler,
		middleware.NewAuthMiddleware,
		newRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func newRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
