package bootstrap

import (
	"forget-bot/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	LoggerModule,
	JWTModule,
	MetricsModule,
	components.PersistenceModule,
	components.WorkflowModule,
	components.UseCaseModule,
	components.HandlerModule,
)
